package reflector

import (
	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/transport"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// soapVersion builds the version-specific extensions of a SOAP binding.
type soapVersion struct {
	name      string
	binding   func(b description.SOAPBinding) description.Extension
	operation func(o description.SOAPOperation) description.Extension
	body      func(b description.SOAPBody) description.Extension
	address   func(a description.SOAPAddress) description.Extension
}

var soap11 = soapVersion{
	name:      description.ProtocolSOAP,
	binding:   func(b description.SOAPBinding) description.Extension { return &b },
	operation: func(o description.SOAPOperation) description.Extension { return &o },
	body:      func(b description.SOAPBody) description.Extension { return &b },
	address:   func(a description.SOAPAddress) description.Extension { return &a },
}

var soap12 = soapVersion{
	name: description.ProtocolSOAP12,
	binding: func(b description.SOAPBinding) description.Extension {
		return &description.SOAP12Binding{SOAPBinding: b}
	},
	operation: func(o description.SOAPOperation) description.Extension {
		return &description.SOAP12Operation{SOAPOperation: o}
	},
	body: func(b description.SOAPBody) description.Extension {
		return &description.SOAP12Body{SOAPBody: b}
	},
	address: func(a description.SOAPAddress) description.Extension {
		return &description.SOAP12Address{SOAPAddress: a}
	},
}

// soapProtocol reflects methods as document/literal SOAP operations. The
// request travels in an element named after the operation and the response in
// OperationNameResponse.
type soapProtocol struct {
	version soapVersion
}

func (s *soapProtocol) Name() string { return s.version.name }

func (s *soapProtocol) BeginClass(r *Reflection) error {
	r.Binding.Extensions.Add(s.version.binding(description.SOAPBinding{
		Transport: transport.SOAPOverHTTP,
		Style:     description.StyleDocument,
	}))
	r.Port.Extensions.Add(s.version.address(description.SOAPAddress{
		URL: r.Context.CombineURI(r.Class.Location),
	}))
	return nil
}

func (s *soapProtocol) ReflectMethod(r *Reflection) (bool, error) {
	m := r.Method
	opName := m.OperationName()
	x := r.exporter()

	params := make([]*schema.Element, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, x.member(p.Name, p.Type))
	}
	request := x.wrapper(m.RequestElementName(), params...)

	var results []*schema.Element
	if !m.Return.IsVoid() {
		results = append(results, x.member(opName+"Result", m.Return))
	}
	response := x.wrapper(opName+"Response", results...)

	r.InputMessage.Parts = []*description.MessagePart{{Name: "parameters", Element: request}}
	r.OutputMessage.Parts = []*description.MessagePart{{Name: "parameters", Element: response}}

	r.OperationBinding.Extensions.Add(s.version.operation(description.SOAPOperation{
		SOAPAction: soapAction(r),
		Style:      description.StyleDocument,
	}))
	r.OperationBinding.Input.Extensions.Add(s.version.body(description.SOAPBody{Use: description.UseLiteral}))
	r.OperationBinding.Output.Extensions.Add(s.version.body(description.SOAPBody{Use: description.UseLiteral}))
	return true, nil
}

func (s *soapProtocol) EndClass(*Reflection) error { return nil }

// soapAction is the explicit action of the method, else the target namespace
// joined with the operation name.
func soapAction(r *Reflection) string {
	if r.Method.Action != "" {
		return r.Method.Action
	}
	return xmlns.JoinAction(r.Namespace(), r.Method.OperationName())
}

// requestElement returns the element carried by the input message.
func requestElement(r *Reflection) xmlns.QName {
	if len(r.InputMessage.Parts) == 0 {
		return xmlns.QName{}
	}
	return r.InputMessage.Parts[0].Element
}

// SOAP11 reflects classes as SOAP 1.1 bindings.
type SOAP11 struct {
	soapProtocol
}

// NewSOAP11 returns the SOAP 1.1 protocol.
func NewSOAP11() *SOAP11 {
	return &SOAP11{soapProtocol{version: soap11}}
}
