// Package xmlns holds qualified names and the namespace URIs shared by the
// WSDL graph, the schema set and the protocol plugins.
package xmlns

import "strings"

// Well-known namespace URIs.
const (
	XSD     = "http://www.w3.org/2001/XMLSchema"
	WSDL    = "http://schemas.xmlsoap.org/wsdl/"
	SOAPEnc = "http://schemas.xmlsoap.org/soap/encoding/"
	SOAP    = "http://schemas.xmlsoap.org/wsdl/soap/"
	SOAP12  = "http://schemas.xmlsoap.org/wsdl/soap12/"
	HTTP    = "http://schemas.xmlsoap.org/wsdl/http/"
	MIME    = "http://schemas.xmlsoap.org/wsdl/mime/"
	Text    = "http://microsoft.com/wsdl/mime/textMatching/"
)

// QName is a namespace-qualified XML name.
type QName struct {
	Space string `json:"space,omitempty" yaml:"space,omitempty"`
	Local string `json:"local" yaml:"local"`
}

// Name builds a QName.
func Name(space, local string) QName {
	return QName{Space: space, Local: local}
}

// XSDName returns a name in the XML Schema namespace.
func XSDName(local string) QName {
	return QName{Space: XSD, Local: local}
}

// IsZero reports whether the name is unset.
func (q QName) IsZero() bool {
	return q.Local == ""
}

// String renders the name in Clark notation, {space}local.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}

// ParseQName parses Clark notation produced by String.
func ParseQName(s string) QName {
	if strings.HasPrefix(s, "{") {
		if end := strings.IndexByte(s, '}'); end > 0 {
			return QName{Space: s[1:end], Local: s[end+1:]}
		}
	}
	return QName{Local: s}
}

// JoinAction appends name to ns the way default SOAP actions are formed.
func JoinAction(ns, name string) string {
	if ns == "" || strings.HasSuffix(ns, "/") {
		return ns + name
	}
	return ns + "/" + name
}
