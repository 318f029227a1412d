package wsdlxml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// lookupNamespace finds the URI bound to prefix at el. The empty prefix
// resolves to the default namespace, or to no namespace when none is
// declared.
func lookupNamespace(el *etree.Element, prefix string) (string, bool) {
	if prefix == "xml" {
		return xmlNamespace, true
	}
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value, true
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value, true
			}
		}
	}
	return "", prefix == ""
}

// elementNamespace is the namespace URI of el.
func elementNamespace(el *etree.Element) string {
	ns, _ := lookupNamespace(el, el.Space)
	return ns
}

// is reports whether el is {ns}local.
func is(el *etree.Element, ns, local string) bool {
	return el.Tag == local && elementNamespace(el) == ns
}

// children returns the child elements of el named {ns}local.
func children(el *etree.Element, ns, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if is(c, ns, local) {
			out = append(out, c)
		}
	}
	return out
}

// child returns the first child element of el named {ns}local.
func child(el *etree.Element, ns, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if is(c, ns, local) {
			return c
		}
	}
	return nil
}

// attr returns the unqualified attribute key of el.
func attr(el *etree.Element, key string) string {
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value
		}
	}
	return ""
}

// attrNS returns the attribute {ns}key of el.
func attrNS(el *etree.Element, ns, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.Space == "" || a.Space == "xmlns" || a.Key != key {
			continue
		}
		if uri, ok := lookupNamespace(el, a.Space); ok && uri == ns {
			return a.Value, true
		}
	}
	return "", false
}

// resolveQName resolves a prefixed name such as tns:Foo in the scope of el.
func resolveQName(el *etree.Element, value string) (xmlns.QName, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return xmlns.QName{}, nil
	}
	prefix, local := "", value
	if i := strings.IndexByte(value, ':'); i >= 0 {
		prefix, local = value[:i], value[i+1:]
	}
	ns, ok := lookupNamespace(el, prefix)
	if !ok {
		return xmlns.QName{}, fmt.Errorf("undeclared namespace prefix %q in %q", prefix, value)
	}
	return xmlns.Name(ns, local), nil
}

// wellKnownPrefixes are the prefixes written for the namespaces wsdlkit
// understands.
var wellKnownPrefixes = map[string]string{
	xmlns.WSDL:    "wsdl",
	xmlns.SOAP:    "soap",
	xmlns.SOAP12:  "soap12",
	xmlns.HTTP:    "http",
	xmlns.MIME:    "mime",
	xmlns.Text:    "tm",
	xmlns.XSD:     "s",
	xmlns.SOAPEnc: "soapenc",
}

// prefixes assigns a prefix to every namespace a written document uses.
type prefixes struct {
	byURI      map[string]string
	used       map[string]bool
	referenced map[string]bool
	next       int
}

func newPrefixes(targetNamespace string) *prefixes {
	p := &prefixes{
		byURI:      make(map[string]string),
		used:       make(map[string]bool),
		referenced: make(map[string]bool),
	}
	for uri, prefix := range wellKnownPrefixes {
		p.byURI[uri] = prefix
		p.used[prefix] = true
	}
	if targetNamespace != "" {
		if _, ok := p.byURI[targetNamespace]; !ok {
			p.byURI[targetNamespace] = "tns"
			p.used["tns"] = true
		}
		p.referenced[targetNamespace] = true
	}
	return p
}

// prefix returns the prefix for uri, allocating one when needed.
func (p *prefixes) prefix(uri string) string {
	p.referenced[uri] = true
	if prefix, ok := p.byURI[uri]; ok {
		return prefix
	}
	for {
		p.next++
		candidate := fmt.Sprintf("ns%d", p.next)
		if !p.used[candidate] {
			p.byURI[uri] = candidate
			p.used[candidate] = true
			return candidate
		}
	}
}

// qname renders q as prefix:local. Names without a namespace stay bare.
func (p *prefixes) qname(q xmlns.QName) string {
	if q.Space == "" {
		return q.Local
	}
	return p.prefix(q.Space) + ":" + q.Local
}

// tag renders an element tag in namespace uri.
func (p *prefixes) tag(uri, local string) string {
	return p.prefix(uri) + ":" + local
}

// declare writes an xmlns declaration for every namespace handed out, sorted
// by prefix so output is stable.
func (p *prefixes) declare(root *etree.Element) {
	type binding struct{ prefix, uri string }
	var out []binding
	for uri, prefix := range p.byURI {
		if p.referenced[uri] {
			out = append(out, binding{prefix, uri})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].prefix < out[j].prefix })
	for _, b := range out {
		root.CreateAttr("xmlns:"+b.prefix, b.uri)
	}
}
