package description

import (
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Content types used by the MIME plugins.
const (
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeTextXML   = "text/xml"
	ContentTypeAppXML    = "application/xml"
	ContentTypeText      = "text/plain"
	ContentTypeOctetData = "application/octet-stream"
)

// MIMEContent is mime:content.
type MIMEContent struct {
	Part string
	Type string
}

// ExtensionName implements Extension.
func (*MIMEContent) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.MIME, "content") }

// MIMEXML is mime:mimeXml.
type MIMEXML struct {
	Part string
}

// ExtensionName implements Extension.
func (*MIMEXML) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.MIME, "mimeXml") }

// MIMETextBinding is the text-matching binding (tm:text).
type MIMETextBinding struct {
	Matches []*MIMETextMatch
}

// ExtensionName implements Extension.
func (*MIMETextBinding) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.Text, "text") }

// RepeatsUnbounded marks a match that may repeat any number of times.
const RepeatsUnbounded = -1

// MIMETextMatch is one tm:match clause. Nested matches describe the shape of
// each captured value.
type MIMETextMatch struct {
	Name       string
	Type       string
	Pattern    string
	Group      int
	Capture    int
	Repeats    int
	IgnoreCase bool
	Matches    []*MIMETextMatch
}

// Repeating reports whether the match may produce more than one value.
func (m *MIMETextMatch) Repeating() bool {
	return m.Repeats == RepeatsUnbounded || m.Repeats > 1
}
