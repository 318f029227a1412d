package importer

import (
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/transport"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Encoding is how a parameter travels on the wire.
type Encoding string

// Parameter encodings.
const (
	EncodingSOAP  Encoding = "soap"
	EncodingQuery Encoding = "query"
	EncodingPath  Encoding = "path"
	EncodingForm  Encoding = "form"
	EncodingXML   Encoding = "xml"
)

// DecoderKind selects how the generated stub reads the response.
type DecoderKind string

// Decoder kinds.
const (
	DecoderNone   DecoderKind = "none"
	DecoderSOAP   DecoderKind = "soap"
	DecoderXML    DecoderKind = "xml"
	DecoderText   DecoderKind = "text"
	DecoderOpaque DecoderKind = "opaque"
)

// Param is one stub parameter.
type Param struct {
	Name     string       `json:"name" yaml:"name"`
	Type     service.Type `json:"type" yaml:"type"`
	Encoding Encoding     `json:"encoding" yaml:"encoding"`
}

// TextMatch is one capture of a text-pattern decoder. Nested matches are
// applied to the text each capture produced.
type TextMatch struct {
	Name       string       `json:"name" yaml:"name"`
	Pattern    string       `json:"pattern" yaml:"pattern"`
	Group      int          `json:"group,omitempty" yaml:"group,omitempty"`
	Capture    int          `json:"capture,omitempty" yaml:"capture,omitempty"`
	Repeating  bool         `json:"repeating,omitempty" yaml:"repeating,omitempty"`
	IgnoreCase bool         `json:"ignoreCase,omitempty" yaml:"ignoreCase,omitempty"`
	Type       service.Type `json:"type" yaml:"type"`
	Matches    []TextMatch  `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Return is the stub return value.
type Return struct {
	Type    service.Type `json:"type" yaml:"type"`
	Decoder DecoderKind  `json:"decoder" yaml:"decoder"`
	// Element is the document element of an XML response, when declared.
	Element xmlns.QName `json:"element,omitempty" yaml:"element,omitempty"`
	// ContentType is the declared media type of an opaque or untyped XML
	// response.
	ContentType string      `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Matches     []TextMatch `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Stub describes one generated method.
type Stub struct {
	Name           string   `json:"name" yaml:"name"`
	Operation      string   `json:"operation" yaml:"operation"`
	Documentation  string   `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Action         string   `json:"action,omitempty" yaml:"action,omitempty"`
	ActionRequired bool     `json:"actionRequired,omitempty" yaml:"actionRequired,omitempty"`
	Verb           string   `json:"verb,omitempty" yaml:"verb,omitempty"`
	Location       string   `json:"location,omitempty" yaml:"location,omitempty"`
	Params         []Param  `json:"params" yaml:"params"`
	Return         Return   `json:"return" yaml:"return"`
	Warnings       []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Client is the stub set generated for one binding.
type Client struct {
	Binding  string               `json:"binding" yaml:"binding"`
	Protocol string               `json:"protocol" yaml:"protocol"`
	BaseType string               `json:"baseType" yaml:"baseType"`
	Info     transport.ClientInfo `json:"info" yaml:"info"`
	Stubs    []*Stub              `json:"stubs" yaml:"stubs"`
}

// Stub returns the stub generated for the operation called name.
func (c *Client) Stub(name string) *Stub {
	for _, s := range c.Stubs {
		if s.Operation == name {
			return s
		}
	}
	return nil
}

// Result is the outcome of an import.
type Result struct {
	Clients  []*Client    `json:"clients" yaml:"clients"`
	Warnings WarningFlags `json:"warnings" yaml:"warnings"`
	Messages []string     `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Client returns the client generated for the binding called name.
func (r *Result) Client(binding string) *Client {
	for _, c := range r.Clients {
		if c.Binding == binding {
			return c
		}
	}
	return nil
}
