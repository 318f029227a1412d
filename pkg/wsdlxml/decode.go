package wsdlxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// wsdl20 is the WSDL 2.0 namespace, recognised only to reject it clearly.
const wsdl20 = "http://www.w3.org/ns/wsdl"

// DecodeFile reads a WSDL document from path.
func DecodeFile(path string) (*description.Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read WSDL file: %w", err)
	}
	defs, err := DecodeBytes(data)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) && de.File == "" {
			de.File = path
		}
		return nil, err
	}
	return defs, nil
}

// Decode reads a WSDL document from r.
func Decode(r io.Reader) (*description.Definitions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read WSDL: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses a WSDL document.
func DecodeBytes(data []byte) (*description.Definitions, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Message: "empty document"}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		de := &DecodeError{Message: "failed to parse XML", Cause: err}
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			de.Line = se.Line
		}
		return nil, de
	}

	root := doc.Root()
	if root == nil {
		return nil, &DecodeError{Message: "document has no root element"}
	}
	switch ns := elementNamespace(root); {
	case root.Tag == "description" && ns == wsdl20:
		return nil, &DecodeError{Message: "WSDL 2.0 is not supported; use a WSDL 1.1 document"}
	case root.Tag != "definitions" || ns != xmlns.WSDL:
		return nil, &DecodeError{Message: fmt.Sprintf("expected root element {%s}definitions, got {%s}%s", xmlns.WSDL, ns, root.Tag)}
	}

	d := &decoder{}
	return d.definitions(root)
}

type decoder struct {
	defs *description.Definitions
}

func (d *decoder) fail(context, format string, args ...any) error {
	return &DecodeError{Context: context, Message: fmt.Sprintf(format, args...)}
}

func (d *decoder) wrap(context string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Context: context, Message: "invalid", Cause: err}
}

func (d *decoder) qname(context string, el *etree.Element, key string) (xmlns.QName, error) {
	q, err := resolveQName(el, attr(el, key))
	if err != nil {
		return q, &DecodeError{Context: context, Message: fmt.Sprintf("attribute %s", key), Cause: err}
	}
	return q, nil
}

func (d *decoder) definitions(root *etree.Element) (*description.Definitions, error) {
	d.defs = description.New(attr(root, "name"), attr(root, "targetNamespace"))

	for _, types := range children(root, xmlns.WSDL, "types") {
		for _, el := range types.ChildElements() {
			if !is(el, xmlns.XSD, "schema") {
				continue
			}
			sc, err := d.schema(el)
			if err != nil {
				return nil, err
			}
			d.defs.Types.Add(sc)
		}
	}
	for _, el := range children(root, xmlns.WSDL, "message") {
		if err := d.message(el); err != nil {
			return nil, err
		}
	}
	for _, el := range children(root, xmlns.WSDL, "portType") {
		if err := d.portType(el); err != nil {
			return nil, err
		}
	}
	for _, el := range children(root, xmlns.WSDL, "binding") {
		if err := d.binding(el); err != nil {
			return nil, err
		}
	}
	for _, el := range children(root, xmlns.WSDL, "service") {
		if err := d.service(el); err != nil {
			return nil, err
		}
	}
	return d.defs, nil
}

func (d *decoder) message(el *etree.Element) error {
	name := attr(el, "name")
	ctx := "message " + name
	if name == "" {
		return d.fail("message", "name is required")
	}
	msg := &description.Message{Name: name}
	for _, pe := range children(el, xmlns.WSDL, "part") {
		part := &description.MessagePart{Name: attr(pe, "name")}
		if part.Name == "" {
			return d.fail(ctx, "part name is required")
		}
		var err error
		if part.Element, err = d.qname(ctx, pe, "element"); err != nil {
			return err
		}
		if part.Type, err = d.qname(ctx, pe, "type"); err != nil {
			return err
		}
		if err := d.extensions(ctx+" part "+part.Name, pe, &part.Extensions); err != nil {
			return err
		}
		msg.Parts = append(msg.Parts, part)
	}
	if err := d.defs.AddMessage(msg); err != nil {
		return d.wrap(ctx, err)
	}
	return nil
}

func (d *decoder) portType(el *etree.Element) error {
	name := attr(el, "name")
	ctx := "portType " + name
	if name == "" {
		return d.fail("portType", "name is required")
	}
	pt := &description.PortType{Name: name}
	for _, oe := range children(el, xmlns.WSDL, "operation") {
		op := &description.Operation{Name: attr(oe, "name")}
		if op.Name == "" {
			return d.fail(ctx, "operation name is required")
		}
		if doc := child(oe, xmlns.WSDL, "documentation"); doc != nil {
			op.Documentation = strings.TrimSpace(doc.Text())
		}
		var err error
		if op.Input, err = d.operationMessage(ctx, oe, "input"); err != nil {
			return err
		}
		if op.Output, err = d.operationMessage(ctx, oe, "output"); err != nil {
			return err
		}
		pt.Operations = append(pt.Operations, op)
	}
	if err := d.defs.AddPortType(pt); err != nil {
		return d.wrap(ctx, err)
	}
	return nil
}

func (d *decoder) operationMessage(ctx string, op *etree.Element, local string) (*description.OperationMessage, error) {
	el := child(op, xmlns.WSDL, local)
	if el == nil {
		return nil, nil
	}
	msg, err := d.qname(ctx+" operation "+attr(op, "name"), el, "message")
	if err != nil {
		return nil, err
	}
	return &description.OperationMessage{Name: attr(el, "name"), Message: msg}, nil
}

func (d *decoder) binding(el *etree.Element) error {
	name := attr(el, "name")
	ctx := "binding " + name
	if name == "" {
		return d.fail("binding", "name is required")
	}
	typ, err := d.qname(ctx, el, "type")
	if err != nil {
		return err
	}
	b := &description.Binding{Name: name, Type: typ}
	if err := d.extensions(ctx, el, &b.Extensions); err != nil {
		return err
	}
	for _, oe := range children(el, xmlns.WSDL, "operation") {
		op := &description.OperationBinding{Name: attr(oe, "name")}
		if op.Name == "" {
			return d.fail(ctx, "operation name is required")
		}
		octx := ctx + " operation " + op.Name
		if err := d.extensions(octx, oe, &op.Extensions); err != nil {
			return err
		}
		if op.Input, err = d.messageBinding(octx, oe, "input"); err != nil {
			return err
		}
		if op.Output, err = d.messageBinding(octx, oe, "output"); err != nil {
			return err
		}
		b.Operations = append(b.Operations, op)
	}
	if err := d.defs.AddBinding(b); err != nil {
		return d.wrap(ctx, err)
	}
	return nil
}

func (d *decoder) messageBinding(ctx string, op *etree.Element, local string) (*description.MessageBinding, error) {
	el := child(op, xmlns.WSDL, local)
	if el == nil {
		return nil, nil
	}
	mb := &description.MessageBinding{Name: attr(el, "name")}
	if err := d.extensions(ctx+" "+local, el, &mb.Extensions); err != nil {
		return nil, err
	}
	return mb, nil
}

func (d *decoder) service(el *etree.Element) error {
	name := attr(el, "name")
	ctx := "service " + name
	if name == "" {
		return d.fail("service", "name is required")
	}
	svc := &description.Service{Name: name}
	for _, pe := range children(el, xmlns.WSDL, "port") {
		port := &description.Port{Name: attr(pe, "name")}
		if port.Name == "" {
			return d.fail(ctx, "port name is required")
		}
		var err error
		if port.Binding, err = d.qname(ctx+" port "+port.Name, pe, "binding"); err != nil {
			return err
		}
		if err := d.extensions(ctx+" port "+port.Name, pe, &port.Extensions); err != nil {
			return err
		}
		svc.Ports = append(svc.Ports, port)
	}
	if err := d.defs.AddService(svc); err != nil {
		return d.wrap(ctx, err)
	}
	return nil
}
