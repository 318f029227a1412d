package wsdlxml

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// schema decodes one xsd:schema. Constructs the schema model has no place
// for (groups, choices, simple content) are skipped.
func (d *decoder) schema(el *etree.Element) (*schema.Schema, error) {
	sc := &schema.Schema{TargetNamespace: attr(el, "targetNamespace")}
	ctx := "schema " + sc.TargetNamespace

	for _, c := range el.ChildElements() {
		if elementNamespace(c) != xmlns.XSD {
			continue
		}
		switch c.Tag {
		case "import":
			sc.Imports = append(sc.Imports, &schema.Import{
				Namespace: attr(c, "namespace"),
				Location:  attr(c, "schemaLocation"),
			})
		case "element":
			e, err := d.element(ctx, c)
			if err != nil {
				return nil, err
			}
			sc.Elements = append(sc.Elements, e)
		case "complexType":
			ct, err := d.complexType(ctx, c)
			if err != nil {
				return nil, err
			}
			sc.ComplexTypes = append(sc.ComplexTypes, ct)
		case "simpleType":
			st, err := d.simpleType(ctx, c)
			if err != nil {
				return nil, err
			}
			sc.SimpleTypes = append(sc.SimpleTypes, st)
		}
	}
	return sc, nil
}

func (d *decoder) element(ctx string, el *etree.Element) (*schema.Element, error) {
	e := &schema.Element{Name: attr(el, "name"), MinOccurs: 1, MaxOccurs: 1}
	ectx := ctx + " element " + e.Name
	var err error
	if e.Ref, err = d.qname(ectx, el, "ref"); err != nil {
		return nil, err
	}
	if e.Type, err = d.qname(ectx, el, "type"); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(attr(el, "minOccurs")); v != "" {
		if e.MinOccurs, err = strconv.Atoi(v); err != nil {
			return nil, d.fail(ectx, "minOccurs %q is not an integer", v)
		}
	}
	switch v := strings.TrimSpace(attr(el, "maxOccurs")); v {
	case "":
	case "unbounded":
		e.MaxOccurs = schema.Unbounded
	default:
		if e.MaxOccurs, err = strconv.Atoi(v); err != nil {
			return nil, d.fail(ectx, "maxOccurs %q is not an integer", v)
		}
	}
	e.Nillable, _ = strconv.ParseBool(attr(el, "nillable"))
	if ce := child(el, xmlns.XSD, "complexType"); ce != nil {
		if e.ComplexType, err = d.complexType(ectx, ce); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (d *decoder) complexType(ctx string, el *etree.Element) (*schema.ComplexType, error) {
	ct := &schema.ComplexType{Name: attr(el, "name")}
	tctx := ctx
	if ct.Name != "" {
		tctx = ctx + " complexType " + ct.Name
	}
	for _, group := range []string{"sequence", "all"} {
		for _, g := range children(el, xmlns.XSD, group) {
			for _, ee := range children(g, xmlns.XSD, "element") {
				e, err := d.element(tctx, ee)
				if err != nil {
					return nil, err
				}
				ct.Sequence = append(ct.Sequence, e)
			}
		}
	}
	attrs, err := d.attributes(tctx, el)
	if err != nil {
		return nil, err
	}
	ct.Attributes = attrs

	if cc := child(el, xmlns.XSD, "complexContent"); cc != nil {
		ct.ComplexContent = &schema.ComplexContent{}
		if re := child(cc, xmlns.XSD, "restriction"); re != nil {
			r := &schema.Restriction{}
			if r.Base, err = d.qname(tctx, re, "base"); err != nil {
				return nil, err
			}
			if r.Attributes, err = d.attributes(tctx, re); err != nil {
				return nil, err
			}
			ct.ComplexContent.Restriction = r
		}
	}
	return ct, nil
}

func (d *decoder) attributes(ctx string, el *etree.Element) ([]*schema.Attribute, error) {
	var out []*schema.Attribute
	for _, ae := range children(el, xmlns.XSD, "attribute") {
		a := &schema.Attribute{Name: attr(ae, "name")}
		var err error
		if a.Ref, err = d.qname(ctx, ae, "ref"); err != nil {
			return nil, err
		}
		if a.Type, err = d.qname(ctx, ae, "type"); err != nil {
			return nil, err
		}
		if v, ok := attrNS(ae, xmlns.WSDL, "arrayType"); ok {
			q, err := resolveQName(ae, strings.TrimSuffix(strings.TrimSpace(v), "[]"))
			if err != nil {
				return nil, &DecodeError{Context: ctx, Message: "attribute wsdl:arrayType", Cause: err}
			}
			a.ArrayOf = q
		}
		out = append(out, a)
	}
	return out, nil
}

func (d *decoder) simpleType(ctx string, el *etree.Element) (*schema.SimpleType, error) {
	st := &schema.SimpleType{Name: attr(el, "name")}
	if re := child(el, xmlns.XSD, "restriction"); re != nil {
		var err error
		if st.Base, err = d.qname(ctx+" simpleType "+st.Name, re, "base"); err != nil {
			return nil, err
		}
		for _, en := range children(re, xmlns.XSD, "enumeration") {
			st.Enumeration = append(st.Enumeration, attr(en, "value"))
		}
	}
	return st, nil
}
