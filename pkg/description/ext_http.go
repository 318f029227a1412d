package description

import (
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// HTTPBinding is http:binding.
type HTTPBinding struct {
	Verb string
}

// ExtensionName implements Extension.
func (*HTTPBinding) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.HTTP, "binding") }

// HTTPOperation is http:operation.
type HTTPOperation struct {
	Location string
}

// ExtensionName implements Extension.
func (*HTTPOperation) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.HTTP, "operation") }

// HTTPAddress is http:address.
type HTTPAddress struct {
	URL string
}

// ExtensionName implements Extension.
func (*HTTPAddress) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.HTTP, "address") }

// Location implements AddressKind.
func (a *HTTPAddress) Location() string { return a.URL }

// SetLocation implements AddressKind.
func (a *HTTPAddress) SetLocation(loc string) { a.URL = loc }

// HTTPURLEncoded is http:urlEncoded: parameters travel in the query string.
type HTTPURLEncoded struct{}

// ExtensionName implements Extension.
func (*HTTPURLEncoded) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.HTTP, "urlEncoded") }

// HTTPURLReplacement is http:urlReplacement: parameters replace path segments.
type HTTPURLReplacement struct{}

// ExtensionName implements Extension.
func (*HTTPURLReplacement) ExtensionName() xmlns.QName {
	return xmlns.Name(xmlns.HTTP, "urlReplacement")
}
