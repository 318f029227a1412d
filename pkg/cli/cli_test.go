package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wsdlkit/pkg/wsdlxml"
)

const classFile = "testdata/calculator.yaml"

// resetFlags restores every flag of cmd and its children to its default so
// package-level flag variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// reflectTo writes the calculator WSDL to path.
func reflectTo(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	_, _, err := run(t, "reflect", "-c", classFile, "--base-uri", "http://localhost/svc/", "-o", path)
	require.NoError(t, err)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReflect_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.wsdl")
	stdout, _, err := run(t, "reflect", "-c", classFile, "--base-uri", "http://localhost/svc/", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path+" (4 bindings)")

	defs, err := wsdlxml.DecodeFile(path)
	require.NoError(t, err)
	var names []string
	for _, b := range defs.Bindings() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"CalculatorSoap", "CalculatorSoap12", "CalculatorHttpGet", "CalculatorHttpPost"}, names)
	assert.Equal(t, "Adds two integers.", defs.PortType(defs.QName("CalculatorSoap")).Operation("Add").Documentation)
}

func TestReflect_JSONSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.wsdl")
	stdout, _, err := run(t, "reflect", "-c", classFile, "-p", "soap", "-o", path, "--json")
	require.NoError(t, err)

	var summary reflectSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, "Calculator", summary.Class)
	assert.Equal(t, []string{"CalculatorSoap"}, summary.Bindings)
	assert.NotEmpty(t, summary.RunID)
}

func TestReflect_StdoutWithHostRewrite(t *testing.T) {
	stdout, _, err := run(t, "reflect", "-c", classFile, "-p", "soap,httpget",
		"--base-uri", "http://localhost/svc/", "--host", "api.example.com:8443")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "<?xml"))
	assert.Contains(t, stdout, `location="http://api.example.com:8443/svc/calc.asmx"`)
	assert.NotContains(t, stdout, "localhost")
	assert.NotContains(t, stdout, "CalculatorSoap12")
	assert.Contains(t, stdout, "CalculatorHttpGet")
}

func TestReflect_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing class flag", []string{"reflect"}, `required flag(s) "class" not set`},
		{"json without output", []string{"reflect", "-c", classFile, "--json"}, "--json requires --output"},
		{"unknown protocol", []string{"reflect", "-c", classFile, "-p", "soap,bogus"}, `reflect.protocols`},
		{"missing class file", []string{"reflect", "-c", "testdata/none.yaml"}, "failed to read class file"},
		{"bad log level", []string{"reflect", "-c", classFile, "--log-level", "loud"}, "invalid --log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestImport_GlobJSON(t *testing.T) {
	dir := t.TempDir()
	reflectTo(t, filepath.Join(dir, "b", "nested", "calc.wsdl"))
	reflectTo(t, filepath.Join(dir, "a", "calc.wsdl"))
	writeFile(t, dir, "notes.txt", "not a wsdl")

	stdout, _, err := run(t, "import", filepath.Join(dir, "**", "*.wsdl"), "--json")
	require.NoError(t, err)

	var reports []importReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, filepath.Join(dir, "a", "calc.wsdl"), reports[0].File)
	assert.Equal(t, filepath.Join(dir, "b", "nested", "calc.wsdl"), reports[1].File)
	assert.NotEqual(t, reports[0].RunID, reports[1].RunID)

	r := reports[0]
	require.Len(t, r.Clients, 4)
	assert.Equal(t, "CalculatorSoap", r.Clients[0].Binding)
	assert.Equal(t, "http://localhost/svc/calc.asmx", r.Clients[0].Info.BaseURL)
	add := r.Clients[0].Stub("Add")
	require.NotNil(t, add)
	assert.Equal(t, "Adds two integers.", add.Documentation)
	require.Len(t, add.Params, 2)
}

func TestImport_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.wsdl")
	reflectTo(t, path)

	stdout, _, err := run(t, "import", path, "-p", "httpget", "--url-config-key", "CalcURL")
	require.NoError(t, err)
	assert.Contains(t, stdout, "binding: CalculatorHttpGet")
	assert.Contains(t, stdout, "urlConfigKey: CalcURL")
	assert.NotContains(t, stdout, "binding: CalculatorSoap")
	assert.Contains(t, stdout, "unsupported bindings ignored")
}

func TestImport_ServerStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.wsdl")
	reflectTo(t, path)

	stdout, stderr, err := run(t, "import", path, "--style", "server", "--json")
	require.NoError(t, err)

	var reports []importReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Clients, 2)
	for _, c := range reports[0].Clients {
		assert.Equal(t, "SOAPServer", c.BaseType)
	}
	assert.Contains(t, reports[0].Warnings, "unsupported bindings ignored")
	assert.Contains(t, stderr, "Warning: ")
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.wsdl", "<definitions/>")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no arguments", []string{"import"}, "requires at least 1 arg"},
		{"no match", []string{"import", filepath.Join(dir, "nothing", "*.wsdl")}, "no files match"},
		{"directory", []string{"import", dir}, "is a directory"},
		{"not wsdl", []string{"import", bad}, bad + ": expected root element"},
		{"bad format", []string{"import", bad, "--format", "xml"}, "invalid --format"},
		{"bad style", []string{"import", bad, "--style", "proxy"}, "import.style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "calc.wsdl")
	reflectTo(t, good)

	stdout, _, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK "+good)
	assert.Contains(t, stdout, "Bindings: 4")

	bad := writeFile(t, dir, "broken.wsdl", "<wsdl:definitions xmlns:wsdl=\"http://schemas.xmlsoap.org/wsdl/\">\n<wsdl:message/>\n</wsdl:definitions>")
	stdout, _, err = run(t, "validate", filepath.Join(dir, "*.wsdl"))
	require.Error(t, err)
	assert.Equal(t, "1 of 2 documents failed validation", err.Error())
	assert.Contains(t, stdout, "INVALID "+bad)
	assert.Contains(t, stdout, "message: name is required")
}

func TestValidate_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.wsdl")
	reflectTo(t, path)

	stdout, _, err := run(t, "validate", path, "--json")
	require.NoError(t, err)

	var reports []validateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Valid)
	assert.Equal(t, 1, reports[0].Services)
	assert.Equal(t, 4, reports[0].Bindings)
}

func TestPlugins(t *testing.T) {
	stdout, _, err := run(t, "plugins", "--json")
	require.NoError(t, err)

	var rows []pluginKind
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, "reflect-protocol", rows[0].Kind)
	assert.Equal(t, []string{"soap", "soap12", "httpget", "httppost"}, rows[0].Enabled)
	assert.Equal(t, []string{"httpget", "httppost", "soap", "soap12"}, rows[0].Available)
	assert.Equal(t, "mime-importer", rows[4].Kind)
	assert.Equal(t, []string{"form", "xml", "text", "opaque"}, rows[4].Enabled)
}

func TestPlugins_FromConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "wsdlkit.yaml", `
import:
  protocols: [httpget, soap]
`)
	stdout, _, err := run(t, "plugins", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "KIND")
	assert.Regexp(t, `import-protocol\s+httpget,soap\s+`, stdout)
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "reflect:\n  protocols: [soap]\n")
	unknown := writeFile(t, dir, "unknown.yaml", "import:\n  mimeImporters: [form, csv]\n")

	stdout, _, err := run(t, "config", "show", "--config", good, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stdout, "level: debug")
	assert.Contains(t, stdout, "- soap\n")

	stdout, _, err = run(t, "config", "schema")
	require.NoError(t, err)
	var schemaDoc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &schemaDoc))
	assert.Contains(t, schemaDoc, "properties")

	stdout, _, err = run(t, "config", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration valid")

	_, _, err = run(t, "config", "validate", unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import.mimeImporters")
	assert.Contains(t, err.Error(), "csv")

	_, _, err = run(t, "config", "validate")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version", "--json")
	require.NoError(t, err)

	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.Equal(t, runtime.Version(), v.Go)
	assert.Equal(t, runtime.GOOS, v.OS)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.wsdl", "")
	b := writeFile(t, dir, "b.wsdl", "")

	files, err := expandInputs([]string{b, filepath.Join(dir, "*.wsdl"), a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	_, err = expandInputs([]string{filepath.Join(dir, "[")})
	require.Error(t, err)
}

func TestReplaceHost(t *testing.T) {
	tests := []struct {
		loc  string
		want string
	}{
		{"http://localhost/svc/calc.asmx", "http://example.com:81/svc/calc.asmx"},
		{"https://localhost:8443/x?wsdl", "https://example.com:81/x?wsdl"},
		{"calc.asmx", "calc.asmx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, replaceHost(tt.loc, "example.com:81"), tt.loc)
	}
}
