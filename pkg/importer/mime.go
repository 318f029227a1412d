package importer

import (
	"strings"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/service"
)

// MimeImporter reads one MIME body shape. Either half reports whether it
// claimed the operation; the first importer to claim a half owns it. A claimed
// half with nil params or a nil return means the importer warned and the
// operation is skipped.
type MimeImporter interface {
	Name() string
	ImportParameters(op *Operation) ([]Param, bool, error)
	ImportReturn(op *Operation) (*Return, bool, error)
}

// FormImporter reads HTML form encoded parameters.
type FormImporter struct{}

func (FormImporter) Name() string { return "form" }

func (FormImporter) ImportParameters(op *Operation) ([]Param, bool, error) {
	claimed := false
	for _, c := range description.FindAll[*description.MIMEContent](op.InputExtensions()) {
		if strings.EqualFold(c.Type, description.ContentTypeForm) {
			claimed = true
			break
		}
	}
	if !claimed {
		return nil, false, nil
	}
	params, err := flatParams(op, EncodingForm)
	return params, true, err
}

func (FormImporter) ImportReturn(*Operation) (*Return, bool, error) { return nil, false, nil }

// flatParams maps every input part to a name/value parameter. It returns nil
// after warning when a part's type cannot be resolved.
func flatParams(op *Operation, enc Encoding) ([]Param, error) {
	params := []Param{}
	if op.Input == nil {
		return params, nil
	}
	for _, p := range op.Input.Parts {
		t, err := op.types.part(p)
		if err != nil {
			op.Warn(UnsupportedOperationsIgnored, "%v", err)
			return nil, nil
		}
		params = append(params, Param{Name: p.Name, Type: t, Encoding: enc})
	}
	return params, nil
}

// XMLImporter reads XML bodies: a mime:mimeXml part yields a typed value and
// a generic XML content type yields an untyped document.
type XMLImporter struct{}

func (XMLImporter) Name() string { return "xml" }

func (XMLImporter) ImportParameters(op *Operation) ([]Param, bool, error) {
	mx, ok := description.Find[*description.MIMEXML](op.InputExtensions())
	if !ok {
		return nil, false, nil
	}
	part, err := op.Part(op.Input, mx.Part)
	if err != nil {
		return nil, true, err
	}
	t, err := op.types.part(part)
	if err != nil {
		op.Warn(UnsupportedOperationsIgnored, "%v", err)
		return nil, true, nil
	}
	return []Param{{Name: part.Name, Type: t, Encoding: EncodingXML}}, true, nil
}

func (XMLImporter) ImportReturn(op *Operation) (*Return, bool, error) {
	if mx, ok := description.Find[*description.MIMEXML](op.OutputExtensions()); ok {
		part, err := op.Part(op.Output, mx.Part)
		if err != nil {
			return nil, true, err
		}
		t, err := op.types.part(part)
		if err != nil {
			op.Warn(UnsupportedOperationsIgnored, "%v", err)
			return nil, true, nil
		}
		return &Return{Type: t, Decoder: DecoderXML, Element: part.Element}, true, nil
	}
	for _, c := range description.FindAll[*description.MIMEContent](op.OutputExtensions()) {
		if isXMLContentType(c.Type) {
			return &Return{Type: service.Document(), Decoder: DecoderXML, ContentType: c.Type}, true, nil
		}
	}
	return nil, false, nil
}

func isXMLContentType(ct string) bool {
	return strings.EqualFold(ct, description.ContentTypeTextXML) ||
		strings.EqualFold(ct, description.ContentTypeAppXML)
}

// TextImporter reads responses declared by text-matching patterns.
type TextImporter struct{}

func (TextImporter) Name() string { return "text" }

func (TextImporter) ImportParameters(*Operation) ([]Param, bool, error) { return nil, false, nil }

func (TextImporter) ImportReturn(op *Operation) (*Return, bool, error) {
	tb, ok := description.Find[*description.MIMETextBinding](op.OutputExtensions())
	if !ok {
		return nil, false, nil
	}
	matches, err := textMatches(op, tb.Matches)
	if err != nil {
		return nil, true, err
	}
	ret := &Return{Decoder: DecoderText, Matches: matches}
	switch len(matches) {
	case 0:
		ret.Type = service.Void()
	case 1:
		ret.Type = matches[0].Type
	default:
		fields := make([]service.Field, 0, len(matches))
		for _, m := range matches {
			fields = append(fields, service.Field{Name: m.Name, Type: m.Type})
		}
		ret.Type = service.Complex(op.Name()+"Matches", fields...)
	}
	return ret, true, nil
}

// textMatches converts match clauses. An empty pattern is fatal; an unnamed
// match cannot become a field and is dropped with a warning.
func textMatches(op *Operation, in []*description.MIMETextMatch) ([]TextMatch, error) {
	out := make([]TextMatch, 0, len(in))
	for _, m := range in {
		if m.Pattern == "" {
			return nil, op.Fatal("text match %q has an empty pattern", m.Name)
		}
		if m.Name == "" {
			op.Warn(OptionalExtensionsIgnored, "text match %q has no name and was ignored", m.Pattern)
			continue
		}
		nested, err := textMatches(op, m.Matches)
		if err != nil {
			return nil, err
		}
		tm := TextMatch{
			Name:       m.Name,
			Pattern:    m.Pattern,
			Group:      m.Group,
			Capture:    m.Capture,
			Repeating:  m.Repeating(),
			IgnoreCase: m.IgnoreCase,
			Matches:    nested,
		}
		tm.Type = matchType(m, nested)
		out = append(out, tm)
	}
	return out, nil
}

// matchType is the value type of one match: a complex shape when it has
// nested matches, else the declared scalar or string.
func matchType(m *description.MIMETextMatch, nested []TextMatch) service.Type {
	var t service.Type
	switch {
	case len(nested) > 0:
		name := m.Type
		if name == "" || service.IsScalarName(name) {
			name = m.Name
		}
		fields := make([]service.Field, 0, len(nested))
		for _, n := range nested {
			fields = append(fields, service.Field{Name: n.Name, Type: n.Type})
		}
		t = service.Complex(name, fields...)
	case service.IsScalarName(m.Type):
		t = service.Scalar(m.Type)
	default:
		t = service.Scalar("string")
	}
	if m.Repeating() {
		return service.ArrayOf(t)
	}
	return t
}

// OpaqueImporter reads any declared output content as a raw byte stream.
type OpaqueImporter struct{}

func (OpaqueImporter) Name() string { return "opaque" }

func (OpaqueImporter) ImportParameters(*Operation) ([]Param, bool, error) { return nil, false, nil }

func (OpaqueImporter) ImportReturn(op *Operation) (*Return, bool, error) {
	c, ok := description.Find[*description.MIMEContent](op.OutputExtensions())
	if !ok {
		return nil, false, nil
	}
	return &Return{Type: service.Stream(), Decoder: DecoderOpaque, ContentType: c.Type}, true, nil
}

// DefaultMimeImporters returns the MIME importers in their default order.
// Opaque comes last so that it only claims what nothing more specific does.
func DefaultMimeImporters() []MimeImporter {
	return []MimeImporter{FormImporter{}, XMLImporter{}, TextImporter{}, OpaqueImporter{}}
}
