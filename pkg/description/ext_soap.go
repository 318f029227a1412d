package description

import (
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// SOAP styles and uses.
const (
	StyleDocument = "document"
	StyleRPC      = "rpc"
	UseLiteral    = "literal"
	UseEncoded    = "encoded"
)

// SOAPBinding is soap:binding.
type SOAPBinding struct {
	Transport string
	Style     string
}

// ExtensionName implements Extension.
func (*SOAPBinding) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP, "binding") }

// SOAP returns the SOAP 1.1 view of the binding.
func (b *SOAPBinding) SOAP() *SOAPBinding { return b }

// SOAP12Binding is soap12:binding.
type SOAP12Binding struct {
	SOAPBinding
}

// ExtensionName implements Extension.
func (*SOAP12Binding) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP12, "binding") }

// SOAPBindingKind matches any SOAP binding extension regardless of version.
type SOAPBindingKind interface {
	Extension
	SOAP() *SOAPBinding
}

// SOAPOperation is soap:operation.
type SOAPOperation struct {
	SOAPAction string
	Style      string
}

// ExtensionName implements Extension.
func (*SOAPOperation) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP, "operation") }

// SOAP returns the SOAP 1.1 view of the operation.
func (o *SOAPOperation) SOAP() *SOAPOperation { return o }

// SOAP12Operation is soap12:operation.
type SOAP12Operation struct {
	SOAPOperation
	SOAPActionRequired bool
}

// ExtensionName implements Extension.
func (*SOAP12Operation) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP12, "operation") }

// SOAPOperationKind matches any SOAP operation extension.
type SOAPOperationKind interface {
	Extension
	SOAP() *SOAPOperation
}

// SOAPBody is soap:body.
type SOAPBody struct {
	Use           string
	Namespace     string
	EncodingStyle string
	Parts         []string
}

// ExtensionName implements Extension.
func (*SOAPBody) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP, "body") }

// SOAP returns the SOAP 1.1 view of the body.
func (b *SOAPBody) SOAP() *SOAPBody { return b }

// SOAP12Body is soap12:body.
type SOAP12Body struct {
	SOAPBody
}

// ExtensionName implements Extension.
func (*SOAP12Body) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP12, "body") }

// SOAPBodyKind matches any SOAP body extension.
type SOAPBodyKind interface {
	Extension
	SOAP() *SOAPBody
}

// SOAPAddress is soap:address.
type SOAPAddress struct {
	URL string
}

// ExtensionName implements Extension.
func (*SOAPAddress) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP, "address") }

// Location implements AddressKind.
func (a *SOAPAddress) Location() string { return a.URL }

// SetLocation implements AddressKind.
func (a *SOAPAddress) SetLocation(loc string) { a.URL = loc }

// SOAP12Address is soap12:address.
type SOAP12Address struct {
	SOAPAddress
}

// ExtensionName implements Extension.
func (*SOAP12Address) ExtensionName() xmlns.QName { return xmlns.Name(xmlns.SOAP12, "address") }

// AddressKind matches any port address extension.
type AddressKind interface {
	Extension
	Location() string
	SetLocation(string)
}
