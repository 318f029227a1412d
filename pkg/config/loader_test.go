package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wsdlkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
reflect:
  protocols: [soap, httppost]
  mimeReturns: [opaque, xml]
import:
  protocols: [soap12, soap]
  style: server
  baseUrl: http://localhost/svc
  transportRules:
    - name: jms
      predicate: 'path endsWith "/jms"'
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"soap", "httppost"}, cfg.Reflect.Protocols)
	assert.Equal(t, []string{"opaque", "xml"}, cfg.Reflect.MimeReturns)
	assert.Equal(t, DefaultMimeParameters(), cfg.Reflect.MimeParameters)
	assert.Equal(t, []string{"soap12", "soap"}, cfg.Import.Protocols)
	assert.Equal(t, DefaultMimeImporters(), cfg.Import.MimeImporters)
	assert.Equal(t, "server", cfg.Import.Style)
	assert.Equal(t, "http://localhost/svc", cfg.Import.BaseURL)
	require.Len(t, cfg.Import.TransportRules, 1)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultImportProtocols(), cfg.Import.Protocols)
	assert.Equal(t, "client", cfg.Import.Style)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/wsdlkit.yaml")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "  \n"))
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		message string
	}{
		{
			name:    "invalid yaml",
			content: "reflect: [",
			want:    ErrInvalidYAML,
		},
		{
			name:    "unknown key",
			content: "reflect:\n  protocol: [soap]\n",
			want:    ErrInvalidConfig,
			message: "reflect",
		},
		{
			name:    "bad style",
			content: "import:\n  style: proxy\n",
			want:    ErrInvalidConfig,
			message: "import.style",
		},
		{
			name:    "duplicate plugin",
			content: "reflect:\n  protocols: [soap, soap]\n",
			want:    ErrInvalidConfig,
		},
		{
			name:    "rule without predicate",
			content: "import:\n  transportRules:\n    - name: jms\n",
			want:    ErrInvalidConfig,
		},
		{
			name:    "rule that does not compile",
			content: "import:\n  transportRules:\n    - name: jms\n      predicate: 'uri +'\n",
			want:    ErrInvalidConfig,
			message: "import.transportRules[0].predicate",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			want:    ErrInvalidConfig,
			message: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.content))
			assert.Nil(t, cfg)
			require.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestParse_EmptyDocumentIsDefault(t *testing.T) {
	cfg, err := Parse([]byte("# nothing configured\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WSDLKIT_LOG_LEVEL", "debug")
	t.Setenv("WSDLKIT_BASE_URL", "http://env.example.com/")
	t.Setenv("WSDLKIT_STYLE", "server")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "http://env.example.com/", cfg.Import.BaseURL)
	assert.Equal(t, "server", cfg.Import.Style)
}

func TestApplyEnv_NothingSet(t *testing.T) {
	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv_InvalidStyle(t *testing.T) {
	t.Setenv("WSDLKIT_STYLE", "proxy")
	err := ApplyEnv(Default())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "object", doc["type"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "reflect")
	assert.Contains(t, props, "import")
	assert.Contains(t, props, "logging")
}

func TestImportConfig_Selector(t *testing.T) {
	cfg := Default()
	cfg.Import.TransportRules = []TransportRule{{Name: "smtp", Predicate: `scheme == "mailto"`}}

	sel, err := cfg.Import.Selector()
	require.NoError(t, err)
	assert.True(t, sel.IsSupportedTransport("http://schemas.xmlsoap.org/soap/http"))
	assert.True(t, sel.IsSupportedTransport("mailto:soap@example.com"))
	assert.False(t, sel.IsSupportedTransport("http://example.com/jms"))
}

func TestToYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Import.URLConfigKey = "StockService.Url"

	data, err := ToYAML(cfg)
	require.NoError(t, err)
	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
