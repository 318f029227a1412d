package reflector

import (
	"github.com/getmockd/wsdlkit/pkg/description"
)

// SOAP12 reflects classes as SOAP 1.2 bindings. Every operation is checked
// for routing ambiguity, and when the class was already reflected as SOAP 1.1
// with an identical contract the SOAP 1.1 port type is shared.
type SOAP12 struct {
	soapProtocol
	resolver *AmbiguityResolver
}

// NewSOAP12 returns the SOAP 1.2 protocol.
func NewSOAP12() *SOAP12 {
	return &SOAP12{soapProtocol: soapProtocol{version: soap12}}
}

// BeginClass implements Protocol.
func (s *SOAP12) BeginClass(r *Reflection) error {
	s.resolver = NewAmbiguityResolver()
	return s.soapProtocol.BeginClass(r)
}

// ReflectMethod implements Protocol.
func (s *SOAP12) ReflectMethod(r *Reflection) (bool, error) {
	ok, err := s.soapProtocol.ReflectMethod(r)
	if !ok || err != nil {
		return ok, err
	}
	op, found := description.Find[*description.SOAP12Operation](&r.OperationBinding.Extensions)
	if !found {
		return true, nil
	}
	if err := s.resolver.Add(r.Method, op, requestElement(r), op.SOAPAction); err != nil {
		return false, err
	}
	return true, nil
}

// EndClass implements Protocol.
func (s *SOAP12) EndClass(r *Reflection) error {
	shared := soap11PortType(r)
	if shared == nil || !sameContract(r, shared, r.PortType) {
		return nil
	}
	for _, op := range r.PortType.Operations {
		r.Definitions.RemoveMessage(op.Input.Message.Local)
		r.Definitions.RemoveMessage(op.Output.Message.Local)
	}
	r.Definitions.RemovePortType(r.PortType.Name)
	r.Binding.Type = r.Definitions.QName(shared.Name)
	r.Logger().Debug("sharing SOAP 1.1 port type", "portType", shared.Name, "binding", r.Binding.Name)
	return nil
}

// soap11PortType finds the port type the SOAP 1.1 pass created for the class.
func soap11PortType(r *Reflection) *description.PortType {
	want := description.Origin{Protocol: description.ProtocolSOAP, Class: r.Class.Name}
	for _, pt := range r.Definitions.PortTypes() {
		if pt.Origin == want {
			return pt
		}
	}
	return nil
}

// sameContract reports whether two port types list the same operations with
// messages made of the same parts.
func sameContract(r *Reflection, a, b *description.PortType) bool {
	if len(a.Operations) != len(b.Operations) {
		return false
	}
	for i, opA := range a.Operations {
		opB := b.Operations[i]
		if opA.Name != opB.Name {
			return false
		}
		if !sameParts(r, opA.Input, opB.Input) || !sameParts(r, opA.Output, opB.Output) {
			return false
		}
	}
	return true
}

func sameParts(r *Reflection, a, b *description.OperationMessage) bool {
	if a == nil || b == nil {
		return a == b
	}
	ma := r.Definitions.Message(a.Message)
	mb := r.Definitions.Message(b.Message)
	if ma == nil || mb == nil || len(ma.Parts) != len(mb.Parts) {
		return false
	}
	for i, pa := range ma.Parts {
		pb := mb.Parts[i]
		if pa.Name != pb.Name || pa.Element != pb.Element || pa.Type != pb.Type {
			return false
		}
	}
	return true
}
