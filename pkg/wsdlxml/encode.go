package wsdlxml

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Encode writes defs as an indented WSDL 1.1 document.
func Encode(w io.Writer, defs *description.Definitions) error {
	doc := newEncoder(defs).document()
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write WSDL: %w", err)
	}
	return nil
}

// EncodeBytes returns defs as an indented WSDL 1.1 document.
func EncodeBytes(defs *description.Definitions) ([]byte, error) {
	return newEncoder(defs).document().WriteToBytes()
}

// EncodeFile writes defs to path.
func EncodeFile(path string, defs *description.Definitions) error {
	data, err := EncodeBytes(defs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write WSDL file: %w", err)
	}
	return nil
}

type encoder struct {
	defs *description.Definitions
	p    *prefixes
}

func newEncoder(defs *description.Definitions) *encoder {
	return &encoder{defs: defs, p: newPrefixes(defs.TargetNamespace)}
}

func (e *encoder) document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	root := doc.CreateElement(e.p.tag(xmlns.WSDL, "definitions"))
	if e.defs.Name != "" {
		root.CreateAttr("name", e.defs.Name)
	}
	if e.defs.TargetNamespace != "" {
		root.CreateAttr("targetNamespace", e.defs.TargetNamespace)
	}

	if e.defs.Types != nil && e.defs.Types.Len() > 0 {
		types := root.CreateElement(e.p.tag(xmlns.WSDL, "types"))
		for _, sc := range e.defs.Types.Schemas() {
			e.schema(types, sc)
		}
	}
	for _, m := range e.defs.Messages() {
		e.message(root, m)
	}
	for _, pt := range e.defs.PortTypes() {
		e.portType(root, pt)
	}
	for _, b := range e.defs.Bindings() {
		e.binding(root, b)
	}
	for _, s := range e.defs.Services() {
		e.service(root, s)
	}

	e.p.declare(root)
	doc.Indent(2)
	return doc
}

func (e *encoder) wsdl(parent *etree.Element, local, name string) *etree.Element {
	el := parent.CreateElement(e.p.tag(xmlns.WSDL, local))
	if name != "" {
		el.CreateAttr("name", name)
	}
	return el
}

func (e *encoder) qnameAttr(el *etree.Element, key string, q xmlns.QName) {
	if !q.IsZero() {
		el.CreateAttr(key, e.p.qname(q))
	}
}

func (e *encoder) message(root *etree.Element, m *description.Message) {
	el := e.wsdl(root, "message", m.Name)
	for _, p := range m.Parts {
		pe := e.wsdl(el, "part", p.Name)
		e.qnameAttr(pe, "element", p.Element)
		e.qnameAttr(pe, "type", p.Type)
		e.extensions(pe, &p.Extensions)
	}
}

func (e *encoder) portType(root *etree.Element, pt *description.PortType) {
	el := e.wsdl(root, "portType", pt.Name)
	for _, op := range pt.Operations {
		oe := e.wsdl(el, "operation", op.Name)
		if op.Documentation != "" {
			e.wsdl(oe, "documentation", "").SetText(op.Documentation)
		}
		for _, m := range []struct {
			local string
			msg   *description.OperationMessage
		}{{"input", op.Input}, {"output", op.Output}} {
			if m.msg == nil {
				continue
			}
			me := e.wsdl(oe, m.local, m.msg.Name)
			e.qnameAttr(me, "message", m.msg.Message)
		}
	}
}

func (e *encoder) binding(root *etree.Element, b *description.Binding) {
	el := e.wsdl(root, "binding", b.Name)
	e.qnameAttr(el, "type", b.Type)
	e.extensions(el, &b.Extensions)
	for _, op := range b.Operations {
		oe := e.wsdl(el, "operation", op.Name)
		e.extensions(oe, &op.Extensions)
		for _, m := range []struct {
			local string
			mb    *description.MessageBinding
		}{{"input", op.Input}, {"output", op.Output}} {
			if m.mb == nil {
				continue
			}
			me := e.wsdl(oe, m.local, m.mb.Name)
			e.extensions(me, &m.mb.Extensions)
		}
	}
}

func (e *encoder) service(root *etree.Element, s *description.Service) {
	el := e.wsdl(root, "service", s.Name)
	for _, p := range s.Ports {
		pe := e.wsdl(el, "port", p.Name)
		e.qnameAttr(pe, "binding", p.Binding)
		e.extensions(pe, &p.Extensions)
	}
}

func (e *encoder) extensions(parent *etree.Element, exts *description.Extensions) {
	for _, ext := range exts.All() {
		e.extension(parent, ext)
	}
}

func (e *encoder) extension(parent *etree.Element, ext description.Extension) {
	name := ext.ExtensionName()
	el := parent.CreateElement(e.p.tag(name.Space, name.Local))
	set := func(key, value string) {
		if value != "" {
			el.CreateAttr(key, value)
		}
	}

	switch x := ext.(type) {
	case *description.SOAPBinding:
		set("transport", x.Transport)
		set("style", x.Style)
	case *description.SOAP12Binding:
		set("transport", x.Transport)
		set("style", x.Style)
	case *description.SOAPOperation:
		el.CreateAttr("soapAction", x.SOAPAction)
		set("style", x.Style)
	case *description.SOAP12Operation:
		el.CreateAttr("soapAction", x.SOAPAction)
		if x.SOAPActionRequired {
			el.CreateAttr("soapActionRequired", "true")
		}
		set("style", x.Style)
	case *description.SOAPBody:
		soapBodyAttrs(set, x)
	case *description.SOAP12Body:
		soapBodyAttrs(set, &x.SOAPBody)
	case *description.SOAPAddress:
		el.CreateAttr("location", x.URL)
	case *description.SOAP12Address:
		el.CreateAttr("location", x.URL)
	case *description.HTTPBinding:
		set("verb", x.Verb)
	case *description.HTTPOperation:
		el.CreateAttr("location", x.Location)
	case *description.HTTPAddress:
		el.CreateAttr("location", x.URL)
	case *description.MIMEContent:
		set("part", x.Part)
		set("type", x.Type)
	case *description.MIMEXML:
		set("part", x.Part)
	case *description.MIMETextBinding:
		e.textMatches(el, x.Matches)
	case *description.Unknown:
		if x.Required {
			el.CreateAttr(e.p.tag(xmlns.WSDL, "required"), "true")
		}
	}
}

func soapBodyAttrs(set func(key, value string), b *description.SOAPBody) {
	set("use", b.Use)
	set("namespace", b.Namespace)
	set("encodingStyle", b.EncodingStyle)
	set("parts", strings.Join(b.Parts, " "))
}

func (e *encoder) textMatches(parent *etree.Element, matches []*description.MIMETextMatch) {
	for _, m := range matches {
		el := parent.CreateElement(e.p.tag(xmlns.Text, "match"))
		if m.Name != "" {
			el.CreateAttr("name", m.Name)
		}
		if m.Type != "" {
			el.CreateAttr("type", m.Type)
		}
		el.CreateAttr("pattern", m.Pattern)
		if m.Group != 1 {
			el.CreateAttr("group", strconv.Itoa(m.Group))
		}
		if m.Capture != 0 {
			el.CreateAttr("capture", strconv.Itoa(m.Capture))
		}
		switch {
		case m.Repeats == description.RepeatsUnbounded:
			el.CreateAttr("repeats", "*")
		case m.Repeats != 1:
			el.CreateAttr("repeats", strconv.Itoa(m.Repeats))
		}
		if m.IgnoreCase {
			el.CreateAttr("ignoreCase", "true")
		}
		e.textMatches(el, m.Matches)
	}
}

func (e *encoder) schema(parent *etree.Element, sc *schema.Schema) {
	el := parent.CreateElement(e.p.tag(xmlns.XSD, "schema"))
	el.CreateAttr("elementFormDefault", "qualified")
	if sc.TargetNamespace != "" {
		el.CreateAttr("targetNamespace", sc.TargetNamespace)
	}
	for _, imp := range sc.Imports {
		ie := el.CreateElement(e.p.tag(xmlns.XSD, "import"))
		ie.CreateAttr("namespace", imp.Namespace)
		if imp.Location != "" {
			ie.CreateAttr("schemaLocation", imp.Location)
		}
	}
	for _, x := range sc.Elements {
		e.element(el, x)
	}
	for _, ct := range sc.ComplexTypes {
		e.complexType(el, ct)
	}
	for _, st := range sc.SimpleTypes {
		e.simpleType(el, st)
	}
}

func (e *encoder) element(parent *etree.Element, x *schema.Element) {
	el := parent.CreateElement(e.p.tag(xmlns.XSD, "element"))
	if x.MinOccurs != 1 {
		el.CreateAttr("minOccurs", strconv.Itoa(x.MinOccurs))
	}
	switch {
	case x.MaxOccurs == schema.Unbounded:
		el.CreateAttr("maxOccurs", "unbounded")
	case x.MaxOccurs != 1:
		el.CreateAttr("maxOccurs", strconv.Itoa(x.MaxOccurs))
	}
	if !x.Ref.IsZero() {
		e.qnameAttr(el, "ref", x.Ref)
		return
	}
	if x.Name != "" {
		el.CreateAttr("name", x.Name)
	}
	if x.Nillable {
		el.CreateAttr("nillable", "true")
	}
	e.qnameAttr(el, "type", x.Type)
	if x.ComplexType != nil {
		e.complexType(el, x.ComplexType)
	}
}

func (e *encoder) complexType(parent *etree.Element, ct *schema.ComplexType) {
	el := parent.CreateElement(e.p.tag(xmlns.XSD, "complexType"))
	if ct.Name != "" {
		el.CreateAttr("name", ct.Name)
	}
	if cc := ct.ComplexContent; cc != nil {
		ce := el.CreateElement(e.p.tag(xmlns.XSD, "complexContent"))
		if r := cc.Restriction; r != nil {
			re := ce.CreateElement(e.p.tag(xmlns.XSD, "restriction"))
			e.qnameAttr(re, "base", r.Base)
			e.attributes(re, r.Attributes)
		}
	}
	if len(ct.Sequence) > 0 {
		seq := el.CreateElement(e.p.tag(xmlns.XSD, "sequence"))
		for _, x := range ct.Sequence {
			e.element(seq, x)
		}
	}
	e.attributes(el, ct.Attributes)
}

func (e *encoder) attributes(parent *etree.Element, attrs []*schema.Attribute) {
	for _, a := range attrs {
		el := parent.CreateElement(e.p.tag(xmlns.XSD, "attribute"))
		if a.Name != "" {
			el.CreateAttr("name", a.Name)
		}
		e.qnameAttr(el, "ref", a.Ref)
		e.qnameAttr(el, "type", a.Type)
		if !a.ArrayOf.IsZero() {
			el.CreateAttr(e.p.tag(xmlns.WSDL, "arrayType"), e.p.qname(a.ArrayOf)+"[]")
		}
	}
}

func (e *encoder) simpleType(parent *etree.Element, st *schema.SimpleType) {
	el := parent.CreateElement(e.p.tag(xmlns.XSD, "simpleType"))
	if st.Name != "" {
		el.CreateAttr("name", st.Name)
	}
	re := el.CreateElement(e.p.tag(xmlns.XSD, "restriction"))
	e.qnameAttr(re, "base", st.Base)
	for _, v := range st.Enumeration {
		re.CreateElement(e.p.tag(xmlns.XSD, "enumeration")).CreateAttr("value", v)
	}
}
