package description

import (
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Extension is a protocol-specific annotation attached to a graph entity.
type Extension interface {
	// ExtensionName is the qualified element name the extension is written as.
	ExtensionName() xmlns.QName
}

// Extensions is an ordered, append-only list of extensions.
type Extensions struct {
	items []Extension
}

// Add appends ext.
func (e *Extensions) Add(ext Extension) {
	if ext == nil {
		return
	}
	e.items = append(e.items, ext)
}

// All returns the extensions in insertion order.
func (e *Extensions) All() []Extension {
	return append([]Extension(nil), e.items...)
}

// Len returns the number of extensions.
func (e *Extensions) Len() int {
	return len(e.items)
}

// Find returns the first extension assignable to K.
func Find[K any](e *Extensions) (K, bool) {
	for _, ext := range e.items {
		if k, ok := ext.(K); ok {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// FindAll returns every extension assignable to K, in insertion order.
func FindAll[K any](e *Extensions) []K {
	var out []K
	for _, ext := range e.items {
		if k, ok := ext.(K); ok {
			out = append(out, k)
		}
	}
	return out
}

// Unknown is an extension element no plugin understands. Required mirrors the
// wsdl:required attribute.
type Unknown struct {
	Name     xmlns.QName
	Required bool
}

// ExtensionName returns the element name.
func (u *Unknown) ExtensionName() xmlns.QName { return u.Name }
