package reflector

import (
	"strconv"

	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// exporter writes service types into a schema fragment as literal XML Schema.
// Named types are created once and reused.
type exporter struct {
	sc *schema.Schema
	ns string
}

func (r *Reflection) exporter() *exporter {
	return &exporter{sc: r.Schema(), ns: r.Namespace()}
}

// typeName returns the schema type for t, creating complex and array types as
// needed.
func (x *exporter) typeName(t service.Type) xmlns.QName {
	switch t.Kind {
	case service.KindScalar:
		return xmlns.XSDName(t.Name)
	case service.KindStream:
		return xmlns.XSDName("base64Binary")
	case service.KindDocument:
		return xmlns.XSDName("anyType")
	case service.KindArray:
		return x.arrayType(t)
	case service.KindComplex:
		return x.complexType(t)
	}
	return xmlns.XSDName("anyType")
}

// arrayType returns the literal array type for t. The encoded string array
// of HTTP parameters may hold the natural name, so another one is picked
// when it does.
func (x *exporter) arrayType(t service.Type) xmlns.QName {
	name, found := x.claim(t.ElementName(), func(ct *schema.ComplexType) bool {
		return !isEncodedStringArray(ct)
	})
	q := xmlns.Name(x.ns, name)
	if found {
		return q
	}
	ct := &schema.ComplexType{Name: name}
	// Registered before the members are exported so that recursive shapes
	// terminate. Parent links are restored when the set is compiled.
	x.sc.AddComplexType(ct)
	item := service.Document()
	if t.Elem != nil {
		item = *t.Elem
	}
	el := schema.NewElement(item.ElementName(), x.typeName(item))
	el.MinOccurs = 0
	el.MaxOccurs = schema.Unbounded
	el.Nillable = item.Kind == service.KindComplex
	ct.Sequence = []*schema.Element{el}
	return q
}

func (x *exporter) complexType(t service.Type) xmlns.QName {
	q := xmlns.Name(x.ns, t.Name)
	if x.sc.ComplexType(t.Name) != nil {
		return q
	}
	ct := &schema.ComplexType{Name: t.Name}
	x.sc.AddComplexType(ct)
	for _, f := range t.Fields {
		ct.Sequence = append(ct.Sequence, x.member(f.Name, f.Type))
	}
	return q
}

// member declares a local element of type t. Scalars are required; anything
// that can be absent on the wire is optional.
func (x *exporter) member(name string, t service.Type) *schema.Element {
	el := schema.NewElement(name, x.typeName(t))
	if t.Kind != service.KindScalar {
		el.MinOccurs = 0
	}
	return el
}

// wrapper declares the global element name with an anonymous sequence. An
// existing element is reused untouched.
func (x *exporter) wrapper(name string, members ...*schema.Element) xmlns.QName {
	q := xmlns.Name(x.ns, name)
	if x.sc.Element(name) != nil {
		return q
	}
	el := &schema.Element{Name: name, MinOccurs: 1, MaxOccurs: 1}
	el.ComplexType = &schema.ComplexType{Sequence: members}
	x.sc.AddElement(el)
	return q
}

// element declares the global element a value of type t travels in, named
// after the type.
func (x *exporter) element(t service.Type) xmlns.QName {
	name := t.ElementName()
	q := xmlns.Name(x.ns, name)
	if x.sc.Element(name) != nil {
		return q
	}
	el := schema.NewElement(name, x.typeName(t))
	el.Nillable = t.Kind != service.KindScalar
	x.sc.AddElement(el)
	return q
}

// arrayOfString returns the SOAP-encoded string array type used for repeated
// HTTP parameters, creating it on first use. When a literal array already
// holds the name ArrayOfString the encoded type is numbered after it.
func (x *exporter) arrayOfString() xmlns.QName {
	name, found := x.claim("ArrayOfString", isEncodedStringArray)
	q := xmlns.Name(x.ns, name)
	if found {
		return q
	}
	x.sc.AddComplexType(&schema.ComplexType{
		Name: name,
		ComplexContent: &schema.ComplexContent{
			Restriction: &schema.Restriction{
				Base: xmlns.Name(xmlns.SOAPEnc, "Array"),
				Attributes: []*schema.Attribute{{
					Ref:     xmlns.Name(xmlns.SOAPEnc, "arrayType"),
					ArrayOf: xmlns.XSDName("string"),
				}},
			},
		},
	})
	return q
}

// claim picks the complex type name for base: the first of base, base1,
// base2... that is either free or already holds a type accepted by fits.
// found reports the latter.
func (x *exporter) claim(base string, fits func(*schema.ComplexType) bool) (name string, found bool) {
	name = base
	for n := 1; ; n++ {
		ct := x.sc.ComplexType(name)
		if ct == nil {
			return name, false
		}
		if fits(ct) {
			return name, true
		}
		name = base + strconv.Itoa(n)
	}
}

// isEncodedStringArray reports whether ct restricts soapenc:Array to strings.
func isEncodedStringArray(ct *schema.ComplexType) bool {
	cc := ct.ComplexContent
	if cc == nil || cc.Restriction == nil || cc.Restriction.Base != xmlns.Name(xmlns.SOAPEnc, "Array") {
		return false
	}
	for _, a := range cc.Restriction.Attributes {
		if a.ArrayOf == xmlns.XSDName("string") {
			return true
		}
	}
	return false
}
