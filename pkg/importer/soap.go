package importer

import (
	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/transport"
)

// soapImporter imports SOAP bindings of one version. Version matching is
// exact: a SOAP 1.1 importer never claims a SOAP 1.2 binding.
type soapImporter struct {
	name     string
	version  transport.SOAPVersion
	selector transport.Selector
	binding  func(ext *description.Extensions) (*description.SOAPBinding, bool)
	body     func(ext *description.Extensions) (*description.SOAPBody, bool)
	// operation returns the operation extension and whether the action is
	// required to route it.
	operation func(ext *description.Extensions) (*description.SOAPOperation, bool, bool)
}

// NewSOAP11 returns the SOAP 1.1 importer. A nil selector accepts the
// standard HTTP transport only.
func NewSOAP11(selector transport.Selector) Protocol {
	return &soapImporter{
		name:     description.ProtocolSOAP,
		version:  transport.SOAP11,
		selector: selectorOrDefault(selector),
		binding: func(ext *description.Extensions) (*description.SOAPBinding, bool) {
			return description.Find[*description.SOAPBinding](ext)
		},
		body: func(ext *description.Extensions) (*description.SOAPBody, bool) {
			return description.Find[*description.SOAPBody](ext)
		},
		operation: func(ext *description.Extensions) (*description.SOAPOperation, bool, bool) {
			op, ok := description.Find[*description.SOAPOperation](ext)
			return op, false, ok
		},
	}
}

// NewSOAP12 returns the SOAP 1.2 importer.
func NewSOAP12(selector transport.Selector) Protocol {
	return &soapImporter{
		name:     description.ProtocolSOAP12,
		version:  transport.SOAP12,
		selector: selectorOrDefault(selector),
		binding: func(ext *description.Extensions) (*description.SOAPBinding, bool) {
			b, ok := description.Find[*description.SOAP12Binding](ext)
			if !ok {
				return nil, false
			}
			return b.SOAP(), true
		},
		body: func(ext *description.Extensions) (*description.SOAPBody, bool) {
			b, ok := description.Find[*description.SOAP12Body](ext)
			if !ok {
				return nil, false
			}
			return b.SOAP(), true
		},
		operation: func(ext *description.Extensions) (*description.SOAPOperation, bool, bool) {
			op, ok := description.Find[*description.SOAP12Operation](ext)
			if !ok {
				return nil, false, false
			}
			return op.SOAP(), op.SOAPActionRequired, true
		},
	}
}

func selectorOrDefault(s transport.Selector) transport.Selector {
	if s == nil {
		return transport.HTTP{}
	}
	return s
}

func (s *soapImporter) Name() string { return s.name }

func (s *soapImporter) SOAPVersion() transport.SOAPVersion { return s.version }

func (s *soapImporter) BaseType(style service.Style) string {
	if style == service.StyleServer {
		return "SOAPServer"
	}
	return "SOAPClient"
}

func (s *soapImporter) IsBindingSupported(b *description.Binding) bool {
	sb, ok := s.binding(&b.Extensions)
	return ok && s.selector.IsSupportedTransport(sb.Transport)
}

func (s *soapImporter) ImportOperation(op *Operation) (*Stub, error) {
	sb, _ := s.binding(&op.Binding.Extensions)
	soapOp, actionRequired, ok := s.operation(&op.Bound.Extensions)
	if !ok {
		op.Warn(UnsupportedOperationsIgnored, "no %s operation extension", s.name)
		return nil, nil
	}
	style := soapOp.Style
	if style == "" {
		style = sb.Style
	}
	if style == "" {
		style = description.StyleDocument
	}

	inBody, ok := s.body(op.InputExtensions())
	if !ok {
		op.Warn(UnsupportedOperationsIgnored, "input has no %s body", s.name)
		return nil, nil
	}
	outBody, hasOut := s.body(op.OutputExtensions())
	for _, body := range []*description.SOAPBody{inBody, outBody} {
		if body != nil && body.Use == description.UseEncoded {
			op.Warn(EncodingStyleUnsupported, "encoded use is not supported")
			return nil, nil
		}
	}

	stub := &Stub{
		Action:         soapOp.SOAPAction,
		ActionRequired: actionRequired,
		Return:         Return{Type: service.Void(), Decoder: DecoderSOAP},
	}

	params, err := s.importParams(op, style, inBody)
	if err != nil || params == nil {
		return nil, err
	}
	stub.Params = params

	if hasOut && op.Output != nil {
		ret, err := s.importReturn(op, style, outBody)
		if err != nil || ret == nil {
			return nil, err
		}
		stub.Return = *ret
	}
	return stub, nil
}

// bodyParts selects the message parts a body refers to.
func bodyParts(op *Operation, msg *description.Message, body *description.SOAPBody) ([]*description.MessagePart, error) {
	if msg == nil {
		return nil, nil
	}
	if len(body.Parts) == 0 {
		return msg.Parts, nil
	}
	parts := make([]*description.MessagePart, 0, len(body.Parts))
	for _, name := range body.Parts {
		p, err := op.Part(msg, name)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// importParams returns the stub parameters, or nil after warning when the
// operation cannot be imported.
func (s *soapImporter) importParams(op *Operation, style string, body *description.SOAPBody) ([]Param, error) {
	parts, err := bodyParts(op, op.Input, body)
	if err != nil {
		return nil, err
	}
	params := []Param{}
	if style == description.StyleDocument {
		if len(parts) == 0 {
			return params, nil
		}
		if len(parts) > 1 || parts[0].Element.IsZero() {
			op.Warn(UnsupportedOperationsIgnored, "document style input must be a single element part")
			return nil, nil
		}
		members, err := op.types.members(parts[0].Element)
		if err != nil {
			op.Warn(UnsupportedOperationsIgnored, "%v", err)
			return nil, nil
		}
		for _, el := range members {
			t, err := op.types.element(el)
			if err != nil {
				op.Warn(UnsupportedOperationsIgnored, "%v", err)
				return nil, nil
			}
			params = append(params, Param{Name: fieldName(el), Type: t, Encoding: EncodingSOAP})
		}
		return params, nil
	}
	for _, p := range parts {
		t, err := op.types.part(p)
		if err != nil {
			op.Warn(UnsupportedOperationsIgnored, "%v", err)
			return nil, nil
		}
		params = append(params, Param{Name: p.Name, Type: t, Encoding: EncodingSOAP})
	}
	return params, nil
}

func (s *soapImporter) importReturn(op *Operation, style string, body *description.SOAPBody) (*Return, error) {
	parts, err := bodyParts(op, op.Output, body)
	if err != nil {
		return nil, err
	}
	ret := &Return{Type: service.Void(), Decoder: DecoderSOAP}
	if len(parts) == 0 {
		return ret, nil
	}
	if len(parts) > 1 {
		op.Warn(UnsupportedOperationsIgnored, "output has %d parts; at most one is supported", len(parts))
		return nil, nil
	}
	part := parts[0]
	if style == description.StyleDocument && !part.Element.IsZero() {
		ret.Element = part.Element
		members, err := op.types.members(part.Element)
		if err != nil {
			op.Warn(UnsupportedOperationsIgnored, "%v", err)
			return nil, nil
		}
		switch len(members) {
		case 0:
		case 1:
			t, err := op.types.element(members[0])
			if err != nil {
				op.Warn(UnsupportedOperationsIgnored, "%v", err)
				return nil, nil
			}
			ret.Type = t
		default:
			t, err := op.types.part(&description.MessagePart{Name: part.Name, Element: part.Element})
			if err != nil {
				op.Warn(UnsupportedOperationsIgnored, "%v", err)
				return nil, nil
			}
			ret.Type = t
		}
		return ret, nil
	}
	t, err := op.types.part(part)
	if err != nil {
		op.Warn(UnsupportedOperationsIgnored, "%v", err)
		return nil, nil
	}
	ret.Type = t
	ret.Element = part.Element
	return ret, nil
}
