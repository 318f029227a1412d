package reflector

import (
	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/service"
)

// MimeParameterReflector claims the parameters of an HTTP operation by adding
// its marker to the input binding.
type MimeParameterReflector interface {
	Name() string
	ReflectParameters(r *Reflection) bool
}

// MimeReturnReflector claims the return value of an HTTP operation by shaping
// the output message and binding.
type MimeReturnReflector interface {
	Name() string
	ReflectReturn(r *Reflection) bool
}

// FormParameters sends flat parameters as an HTML form body.
type FormParameters struct{}

func (FormParameters) Name() string { return "form" }

func (FormParameters) ReflectParameters(r *Reflection) bool {
	if !r.Method.HasFlatParams() {
		return false
	}
	r.OperationBinding.Input.Extensions.Add(&description.MIMEContent{Type: description.ContentTypeForm})
	return true
}

// XMLParameters sends a single structured parameter as an XML body.
type XMLParameters struct{}

func (XMLParameters) Name() string { return "xml" }

func (XMLParameters) ReflectParameters(r *Reflection) bool {
	if len(r.Method.Params) != 1 {
		return false
	}
	p := r.Method.Params[0]
	if p.Type.IsFlat() {
		return false
	}
	r.OperationBinding.Input.Extensions.Add(&description.MIMEXML{Part: p.Name})
	return true
}

// bodyPart names the output part of an XML response.
const bodyPart = "Body"

// XMLReturn returns structured values as an XML document described by the
// schema. Untyped documents are declared by content type only.
type XMLReturn struct{}

func (XMLReturn) Name() string { return "xml" }

func (XMLReturn) ReflectReturn(r *Reflection) bool {
	t := r.Method.Return
	switch t.Kind {
	case service.KindScalar, service.KindArray, service.KindComplex:
		el := r.exporter().element(t)
		r.OutputMessage.Parts = append(r.OutputMessage.Parts, &description.MessagePart{Name: bodyPart, Element: el})
		r.OperationBinding.Output.Extensions.Add(&description.MIMEXML{Part: bodyPart})
		return true
	case service.KindDocument:
		r.OperationBinding.Output.Extensions.Add(&description.MIMEContent{Type: description.ContentTypeTextXML})
		return true
	}
	return false
}

// TextReturn returns scalars, and arrays of scalars, as plain text picked
// out of the response by a pattern.
type TextReturn struct{}

func (TextReturn) Name() string { return "text" }

func (TextReturn) ReflectReturn(r *Reflection) bool {
	t := r.Method.Return
	match := &description.MIMETextMatch{
		Name:  r.Method.OperationName() + "Result",
		Group: 1,
	}
	switch {
	case t.Kind == service.KindScalar:
		match.Type = t.Name
		match.Pattern = "(.*)"
		match.Repeats = 1
	case t.Kind == service.KindArray && t.IsFlat():
		match.Type = t.Elem.Name
		match.Pattern = "(.+)"
		match.Repeats = description.RepeatsUnbounded
	default:
		return false
	}
	r.OperationBinding.Output.Extensions.Add(&description.MIMETextBinding{
		Matches: []*description.MIMETextMatch{match},
	})
	return true
}

// OpaqueReturn returns the body as is.
type OpaqueReturn struct{}

func (OpaqueReturn) Name() string { return "opaque" }

func (OpaqueReturn) ReflectReturn(r *Reflection) bool {
	var contentType string
	switch t := r.Method.Return; t.Kind {
	case service.KindStream:
		contentType = description.ContentTypeOctetData
	case service.KindScalar:
		contentType = description.ContentTypeText
		if t.Name == "base64Binary" || t.Name == "hexBinary" {
			contentType = description.ContentTypeOctetData
		}
	case service.KindDocument:
		contentType = description.ContentTypeTextXML
	default:
		return false
	}
	r.OperationBinding.Output.Extensions.Add(&description.MIMEContent{Type: contentType})
	return true
}

// DefaultParameterReflectors returns the parameter reflectors in their
// default order.
func DefaultParameterReflectors() []MimeParameterReflector {
	return []MimeParameterReflector{FormParameters{}, XMLParameters{}}
}

// DefaultReturnReflectors returns the return reflectors in their default
// priority order.
func DefaultReturnReflectors() []MimeReturnReflector {
	return []MimeReturnReflector{XMLReturn{}, TextReturn{}, OpaqueReturn{}}
}
