package importer

import (
	"fmt"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// typeMapper maps schema declarations to service types.
type typeMapper struct {
	set      *schema.Set
	visiting map[xmlns.QName]bool
	// elements holds the global elements being mapped, keyed apart from
	// types since the two symbol spaces may share names.
	elements map[xmlns.QName]bool
}

func newTypeMapper(set *schema.Set) *typeMapper {
	if set == nil {
		set = schema.NewSet()
	}
	return &typeMapper{
		set:      set,
		visiting: make(map[xmlns.QName]bool),
		elements: make(map[xmlns.QName]bool),
	}
}

// part maps a message part through its element or type.
func (m *typeMapper) part(p *description.MessagePart) (service.Type, error) {
	switch {
	case !p.Element.IsZero():
		el := m.set.Element(p.Element)
		if el == nil {
			return service.Type{}, fmt.Errorf("part %s: element %s is not declared", p.Name, p.Element)
		}
		return m.global(p.Element, el, m.element)
	case !p.Type.IsZero():
		return m.typeName(p.Type)
	}
	return service.Document(), nil
}

// element maps an element declaration. Repeated elements become arrays.
func (m *typeMapper) element(el *schema.Element) (service.Type, error) {
	t, err := m.elementItem(el)
	if err != nil {
		return service.Type{}, err
	}
	if el.Repeated() {
		return service.ArrayOf(t), nil
	}
	return t, nil
}

func (m *typeMapper) elementItem(el *schema.Element) (service.Type, error) {
	switch {
	case !el.Ref.IsZero():
		global := m.set.Element(el.Ref)
		if global == nil {
			return service.Type{}, fmt.Errorf("element %s is not declared", el.Ref)
		}
		return m.global(el.Ref, global, m.elementItem)
	case !el.Type.IsZero():
		return m.typeName(el.Type)
	case el.ComplexType != nil:
		return m.complex(el.Name, el.ComplexType)
	}
	return service.Document(), nil
}

// global maps a global element through fn. A global element reached again
// while it is being mapped is a recursive reference and maps to a complex
// type of the same name.
func (m *typeMapper) global(q xmlns.QName, el *schema.Element, fn func(*schema.Element) (service.Type, error)) (service.Type, error) {
	if m.elements[q] {
		return service.Complex(q.Local), nil
	}
	m.elements[q] = true
	defer delete(m.elements, q)
	return fn(el)
}

// typeName maps a named type.
func (m *typeMapper) typeName(q xmlns.QName) (service.Type, error) {
	switch q.Space {
	case xmlns.XSD, xmlns.SOAPEnc:
		if service.IsScalarName(q.Local) {
			return service.Scalar(q.Local), nil
		}
		if q.Local == "anyType" {
			return service.Document(), nil
		}
		return service.Scalar("string"), nil
	}
	if ct := m.set.ComplexType(q); ct != nil {
		if m.visiting[q] {
			return service.Complex(q.Local), nil
		}
		m.visiting[q] = true
		defer delete(m.visiting, q)
		return m.complex(q.Local, ct)
	}
	if st := m.set.SimpleType(q); st != nil {
		if st.Base.IsZero() || len(st.Enumeration) > 0 {
			return service.Scalar("string"), nil
		}
		return m.typeName(st.Base)
	}
	return service.Type{}, fmt.Errorf("type %s is not declared", q)
}

// complex maps a complex type. SOAP-encoded arrays and sequences holding a
// single repeated element are arrays.
func (m *typeMapper) complex(name string, ct *schema.ComplexType) (service.Type, error) {
	if cc := ct.ComplexContent; cc != nil && cc.Restriction != nil &&
		cc.Restriction.Base == xmlns.Name(xmlns.SOAPEnc, "Array") {
		for _, a := range cc.Restriction.Attributes {
			if !a.ArrayOf.IsZero() {
				item, err := m.typeName(a.ArrayOf)
				if err != nil {
					return service.Type{}, err
				}
				return service.ArrayOf(item), nil
			}
		}
		return service.ArrayOf(service.Document()), nil
	}
	if len(ct.Sequence) == 1 && ct.Sequence[0].Repeated() {
		item, err := m.elementItem(ct.Sequence[0])
		if err != nil {
			return service.Type{}, err
		}
		return service.ArrayOf(item), nil
	}
	fields := make([]service.Field, 0, len(ct.Sequence))
	for _, el := range ct.Sequence {
		ft, err := m.element(el)
		if err != nil {
			return service.Type{}, fmt.Errorf("%s.%s: %w", name, fieldName(el), err)
		}
		fields = append(fields, service.Field{Name: fieldName(el), Type: ft})
	}
	return service.Complex(name, fields...), nil
}

// members lists the sequence of a wrapper element, the shape of document
// style SOAP messages.
func (m *typeMapper) members(q xmlns.QName) ([]*schema.Element, error) {
	el := m.set.Element(q)
	if el == nil {
		return nil, fmt.Errorf("element %s is not declared", q)
	}
	ct := el.ComplexType
	if ct == nil && !el.Type.IsZero() {
		ct = m.set.ComplexType(el.Type)
	}
	if ct == nil {
		return nil, fmt.Errorf("element %s is not a wrapper", q)
	}
	return ct.Sequence, nil
}

func fieldName(el *schema.Element) string {
	if el.Name != "" {
		return el.Name
	}
	return el.Ref.Local
}
