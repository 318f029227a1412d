package config

import (
	"io"
	"log/slog"

	"github.com/getmockd/wsdlkit/pkg/logging"
	"github.com/getmockd/wsdlkit/pkg/transport"
)

// Plugin names.
const (
	PluginSOAP     = "soap"
	PluginSOAP12   = "soap12"
	PluginHTTPGet  = "httpget"
	PluginHTTPPost = "httppost"

	PluginForm   = "form"
	PluginXML    = "xml"
	PluginText   = "text"
	PluginOpaque = "opaque"
)

// Config is the root configuration document.
type Config struct {
	Reflect ReflectConfig `json:"reflect,omitempty" yaml:"reflect,omitempty" jsonschema:"description=Reflection plugins and their order"`
	Import  ImportConfig  `json:"import,omitempty" yaml:"import,omitempty" jsonschema:"description=Import plugins and options"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ReflectConfig selects the reflection protocols and MIME reflectors.
type ReflectConfig struct {
	// Protocols run in order; each produces its own binding.
	Protocols []string `json:"protocols,omitempty" yaml:"protocols,omitempty" jsonschema:"uniqueItems=true"`
	// MimeParameters are the HTTP POST parameter reflectors. All of them are
	// asked; at least one must claim a method.
	MimeParameters []string `json:"mimeParameters,omitempty" yaml:"mimeParameters,omitempty" jsonschema:"uniqueItems=true"`
	// MimeReturns are tried in order and the first to claim a return wins.
	MimeReturns []string `json:"mimeReturns,omitempty" yaml:"mimeReturns,omitempty" jsonschema:"uniqueItems=true"`
	// BaseURI resolves relative service locations.
	BaseURI string `json:"baseUri,omitempty" yaml:"baseUri,omitempty"`
}

// ImportConfig selects the import protocols and MIME importers.
type ImportConfig struct {
	// Protocols are asked in order; the first supporting a binding imports it.
	Protocols     []string `json:"protocols,omitempty" yaml:"protocols,omitempty" jsonschema:"uniqueItems=true"`
	MimeImporters []string `json:"mimeImporters,omitempty" yaml:"mimeImporters,omitempty" jsonschema:"uniqueItems=true"`

	Style              string `json:"style,omitempty" yaml:"style,omitempty" jsonschema:"enum=client,enum=server"`
	BaseURL            string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	URLConfigKey       string `json:"urlConfigKey,omitempty" yaml:"urlConfigKey,omitempty"`
	FailOnSchemaErrors bool   `json:"failOnSchemaErrors,omitempty" yaml:"failOnSchemaErrors,omitempty"`

	// TransportRules accept SOAP transports beyond plain HTTP.
	TransportRules []TransportRule `json:"transportRules,omitempty" yaml:"transportRules,omitempty"`
}

// TransportRule is a named expr predicate over a transport URI.
type TransportRule struct {
	Name      string `json:"name" yaml:"name" jsonschema:"minLength=1"`
	Predicate string `json:"predicate" yaml:"predicate" jsonschema:"minLength=1"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=warning,enum=error"`
	Format string `json:"format,omitempty" yaml:"format,omitempty" jsonschema:"enum=text,enum=json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultReflectProtocols is the default reflection order.
func DefaultReflectProtocols() []string {
	return []string{PluginSOAP, PluginSOAP12, PluginHTTPGet, PluginHTTPPost}
}

// DefaultImportProtocols is the default import order. SOAP comes first so
// that a binding is never claimed by a weaker protocol.
func DefaultImportProtocols() []string {
	return []string{PluginSOAP, PluginSOAP12, PluginHTTPPost, PluginHTTPGet}
}

// DefaultMimeParameters is the default parameter reflector set.
func DefaultMimeParameters() []string {
	return []string{PluginForm, PluginXML}
}

// DefaultMimeReturns is the default return reflector order.
func DefaultMimeReturns() []string {
	return []string{PluginXML, PluginText, PluginOpaque}
}

// DefaultMimeImporters is the default MIME importer order.
func DefaultMimeImporters() []string {
	return []string{PluginForm, PluginXML, PluginText, PluginOpaque}
}

func (c *Config) applyDefaults() {
	if len(c.Reflect.Protocols) == 0 {
		c.Reflect.Protocols = DefaultReflectProtocols()
	}
	if len(c.Reflect.MimeParameters) == 0 {
		c.Reflect.MimeParameters = DefaultMimeParameters()
	}
	if len(c.Reflect.MimeReturns) == 0 {
		c.Reflect.MimeReturns = DefaultMimeReturns()
	}
	if len(c.Import.Protocols) == 0 {
		c.Import.Protocols = DefaultImportProtocols()
	}
	if len(c.Import.MimeImporters) == 0 {
		c.Import.MimeImporters = DefaultMimeImporters()
	}
	if c.Import.Style == "" {
		c.Import.Style = "client"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = string(logging.FormatText)
	}
}

// Selector returns the transport selector for SOAP imports: plain HTTP plus
// every configured rule, in order.
func (c *ImportConfig) Selector() (transport.Selector, error) {
	chain := transport.Chain{transport.HTTP{}}
	for _, r := range c.TransportRules {
		rule, err := transport.NewRule(r.Name, r.Predicate)
		if err != nil {
			return nil, err
		}
		chain = append(chain, rule)
	}
	return chain, nil
}

// Logger builds a logger writing to w.
func (l LoggingConfig) Logger(w io.Writer) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(l.Level),
		Format: logging.ParseFormat(l.Format),
		Output: w,
	})
}
