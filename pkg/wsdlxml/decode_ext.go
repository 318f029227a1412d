package wsdlxml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// extensions decodes every child of el outside the WSDL namespace.
func (d *decoder) extensions(ctx string, el *etree.Element, exts *description.Extensions) error {
	for _, c := range el.ChildElements() {
		ns := elementNamespace(c)
		if ns == xmlns.WSDL {
			continue
		}
		ext, err := d.extension(ctx, c, ns)
		if err != nil {
			return err
		}
		exts.Add(ext)
	}
	return nil
}

func (d *decoder) extension(ctx string, el *etree.Element, ns string) (description.Extension, error) {
	switch ns {
	case xmlns.SOAP:
		if ext := soapExtension(el); ext != nil {
			return ext, nil
		}
	case xmlns.SOAP12:
		if ext := soap12Extension(el); ext != nil {
			return ext, nil
		}
	case xmlns.HTTP:
		if ext := httpExtension(el); ext != nil {
			return ext, nil
		}
	case xmlns.MIME:
		switch el.Tag {
		case "content":
			return &description.MIMEContent{Part: attr(el, "part"), Type: attr(el, "type")}, nil
		case "mimeXml":
			return &description.MIMEXML{Part: attr(el, "part")}, nil
		}
	case xmlns.Text:
		if el.Tag == "text" {
			matches, err := d.textMatches(ctx, el)
			if err != nil {
				return nil, err
			}
			return &description.MIMETextBinding{Matches: matches}, nil
		}
	}
	return unknown(el, ns), nil
}

func unknown(el *etree.Element, ns string) *description.Unknown {
	u := &description.Unknown{Name: xmlns.Name(ns, el.Tag)}
	if v, ok := attrNS(el, xmlns.WSDL, "required"); ok {
		u.Required, _ = strconv.ParseBool(strings.TrimSpace(v))
	}
	return u
}

func soapExtension(el *etree.Element) description.Extension {
	switch el.Tag {
	case "binding":
		return &description.SOAPBinding{Transport: attr(el, "transport"), Style: attr(el, "style")}
	case "operation":
		return &description.SOAPOperation{SOAPAction: attr(el, "soapAction"), Style: attr(el, "style")}
	case "body":
		return soapBody(el)
	case "address":
		return &description.SOAPAddress{URL: attr(el, "location")}
	}
	return nil
}

func soap12Extension(el *etree.Element) description.Extension {
	switch el.Tag {
	case "binding":
		return &description.SOAP12Binding{SOAPBinding: description.SOAPBinding{
			Transport: attr(el, "transport"),
			Style:     attr(el, "style"),
		}}
	case "operation":
		op := &description.SOAP12Operation{SOAPOperation: description.SOAPOperation{
			SOAPAction: attr(el, "soapAction"),
			Style:      attr(el, "style"),
		}}
		op.SOAPActionRequired, _ = strconv.ParseBool(attr(el, "soapActionRequired"))
		return op
	case "body":
		return &description.SOAP12Body{SOAPBody: *soapBody(el)}
	case "address":
		return &description.SOAP12Address{SOAPAddress: description.SOAPAddress{URL: attr(el, "location")}}
	}
	return nil
}

func soapBody(el *etree.Element) *description.SOAPBody {
	return &description.SOAPBody{
		Use:           attr(el, "use"),
		Namespace:     attr(el, "namespace"),
		EncodingStyle: attr(el, "encodingStyle"),
		Parts:         strings.Fields(attr(el, "parts")),
	}
}

func httpExtension(el *etree.Element) description.Extension {
	switch el.Tag {
	case "binding":
		return &description.HTTPBinding{Verb: attr(el, "verb")}
	case "operation":
		return &description.HTTPOperation{Location: attr(el, "location")}
	case "address":
		return &description.HTTPAddress{URL: attr(el, "location")}
	case "urlEncoded":
		return &description.HTTPURLEncoded{}
	case "urlReplacement":
		return &description.HTTPURLReplacement{}
	}
	return nil
}

// textMatches decodes the tm:match children of el.
func (d *decoder) textMatches(ctx string, el *etree.Element) ([]*description.MIMETextMatch, error) {
	var out []*description.MIMETextMatch
	for _, me := range children(el, xmlns.Text, "match") {
		m := &description.MIMETextMatch{
			Name:    attr(me, "name"),
			Type:    attr(me, "type"),
			Pattern: attr(me, "pattern"),
			Group:   1,
			Repeats: 1,
		}
		mctx := ctx + " match " + m.Name
		var err error
		if m.Group, err = intAttr(me, "group", 1); err != nil {
			return nil, d.fail(mctx, "%v", err)
		}
		if m.Capture, err = intAttr(me, "capture", 0); err != nil {
			return nil, d.fail(mctx, "%v", err)
		}
		if v := attr(me, "repeats"); v == "*" {
			m.Repeats = description.RepeatsUnbounded
		} else if m.Repeats, err = intAttr(me, "repeats", 1); err != nil {
			return nil, d.fail(mctx, "%v", err)
		}
		m.IgnoreCase, _ = strconv.ParseBool(attr(me, "ignoreCase"))
		if m.Matches, err = d.textMatches(mctx, me); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func intAttr(el *etree.Element, key string, def int) (int, error) {
	v := strings.TrimSpace(attr(el, key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("attribute %s: %q is not an integer", key, v)
	}
	return n, nil
}
