package schema

import (
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Set maps target namespaces to schema fragments. Namespaces keep the order in
// which they were first added.
type Set struct {
	namespaces []string
	fragments  map[string][]*Schema
	warnings   Warnings
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{fragments: make(map[string][]*Schema)}
}

// Add appends a fragment under its target namespace.
func (s *Set) Add(sc *Schema) {
	ns := sc.TargetNamespace
	if _, ok := s.fragments[ns]; !ok {
		s.namespaces = append(s.namespaces, ns)
	}
	s.fragments[ns] = append(s.fragments[ns], sc)
	link(nil, sc)
}

// Ensure returns the first fragment for ns, creating an empty one if needed.
func (s *Set) Ensure(ns string) *Schema {
	if frags := s.fragments[ns]; len(frags) > 0 {
		return frags[0]
	}
	sc := &Schema{TargetNamespace: ns}
	s.Add(sc)
	return sc
}

// Namespaces returns the target namespaces in insertion order.
func (s *Set) Namespaces() []string {
	return append([]string(nil), s.namespaces...)
}

// Fragments returns the fragments for ns.
func (s *Set) Fragments(ns string) []*Schema {
	return s.fragments[ns]
}

// Schemas returns every fragment, grouped by namespace.
func (s *Set) Schemas() []*Schema {
	var out []*Schema
	for _, ns := range s.namespaces {
		out = append(out, s.fragments[ns]...)
	}
	return out
}

// Len returns the number of fragments.
func (s *Set) Len() int {
	n := 0
	for _, frags := range s.fragments {
		n += len(frags)
	}
	return n
}

// Element resolves a global element.
func (s *Set) Element(q xmlns.QName) *Element {
	for _, sc := range s.fragments[q.Space] {
		if e := sc.Element(q.Local); e != nil {
			return e
		}
	}
	return nil
}

// ComplexType resolves a global complex type.
func (s *Set) ComplexType(q xmlns.QName) *ComplexType {
	for _, sc := range s.fragments[q.Space] {
		if ct := sc.ComplexType(q.Local); ct != nil {
			return ct
		}
	}
	return nil
}

// SimpleType resolves a global simple type.
func (s *Set) SimpleType(q xmlns.QName) *SimpleType {
	for _, sc := range s.fragments[q.Space] {
		if st := sc.SimpleType(q.Local); st != nil {
			return st
		}
	}
	return nil
}

// Warnings returns the result of the last compilation.
func (s *Set) Warnings() Warnings {
	return s.warnings
}
