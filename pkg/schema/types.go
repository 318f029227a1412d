package schema

import (
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Unbounded is the MaxOccurs value for maxOccurs="unbounded".
const Unbounded = -1

// Position is a source location. The zero value means unknown.
type Position struct {
	Line   int
	Column int
}

// Known reports whether the position carries a line number.
func (p Position) Known() bool {
	return p.Line > 0
}

// Object is any node of a schema tree.
type Object interface {
	Parent() Object
	Pos() Position
}

// Node carries the parent link and source position shared by all objects.
type Node struct {
	Position Position
	parent   Object
}

// Parent returns the enclosing object, or nil for a Schema.
func (n *Node) Parent() Object { return n.parent }

// Pos returns the source position.
func (n *Node) Pos() Position { return n.Position }

// Schema is one schema fragment.
type Schema struct {
	Node
	TargetNamespace string
	Imports         []*Import
	Elements        []*Element
	ComplexTypes    []*ComplexType
	SimpleTypes     []*SimpleType
}

// Import is an xsd:import.
type Import struct {
	Node
	Namespace string
	Location  string
}

// Element is an element declaration or reference.
type Element struct {
	Node
	Name        string
	Ref         xmlns.QName
	Type        xmlns.QName
	MinOccurs   int
	MaxOccurs   int
	Nillable    bool
	ComplexType *ComplexType
}

// NewElement returns an element with the default occurrence bounds of 1..1.
func NewElement(name string, typ xmlns.QName) *Element {
	return &Element{Name: name, Type: typ, MinOccurs: 1, MaxOccurs: 1}
}

// Repeated reports whether the element may occur more than once.
func (e *Element) Repeated() bool {
	return e.MaxOccurs == Unbounded || e.MaxOccurs > 1
}

// ComplexType is a named or anonymous complex type.
type ComplexType struct {
	Node
	Name           string
	Sequence       []*Element
	Attributes     []*Attribute
	ComplexContent *ComplexContent
}

// ComplexContent wraps a derivation by restriction.
type ComplexContent struct {
	Node
	Restriction *Restriction
}

// Restriction derives a complex type from Base.
type Restriction struct {
	Node
	Base       xmlns.QName
	Attributes []*Attribute
}

// Attribute is an attribute declaration or reference. ArrayOf carries the
// item type of a wsdl:arrayType annotation.
type Attribute struct {
	Node
	Name    string
	Ref     xmlns.QName
	Type    xmlns.QName
	ArrayOf xmlns.QName
}

// SimpleType is a named simple type derived by restriction.
type SimpleType struct {
	Node
	Name        string
	Base        xmlns.QName
	Enumeration []string
}

// HasImport reports whether the fragment already imports ns.
func (s *Schema) HasImport(ns string) bool {
	for _, imp := range s.Imports {
		if imp.Namespace == ns {
			return true
		}
	}
	return false
}

// AddImport appends an import of ns unless one exists. It reports whether an
// import was added.
func (s *Schema) AddImport(ns string) bool {
	if s.HasImport(ns) {
		return false
	}
	imp := &Import{Namespace: ns}
	imp.parent = s
	s.Imports = append(s.Imports, imp)
	return true
}

// Element returns the global element called name.
func (s *Schema) Element(name string) *Element {
	for _, e := range s.Elements {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// ComplexType returns the global complex type called name.
func (s *Schema) ComplexType(name string) *ComplexType {
	for _, ct := range s.ComplexTypes {
		if ct.Name == name {
			return ct
		}
	}
	return nil
}

// SimpleType returns the global simple type called name.
func (s *Schema) SimpleType(name string) *SimpleType {
	for _, st := range s.SimpleTypes {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// AddElement appends a global element.
func (s *Schema) AddElement(e *Element) {
	s.Elements = append(s.Elements, e)
	link(s, e)
}

// AddComplexType appends a global complex type.
func (s *Schema) AddComplexType(ct *ComplexType) {
	s.ComplexTypes = append(s.ComplexTypes, ct)
	link(s, ct)
}

// AddSimpleType appends a global simple type.
func (s *Schema) AddSimpleType(st *SimpleType) {
	s.SimpleTypes = append(s.SimpleTypes, st)
	link(s, st)
}

// link sets parent pointers for obj and everything below it.
func link(parent Object, obj Object) {
	switch o := obj.(type) {
	case *Schema:
		o.parent = nil
		for _, imp := range o.Imports {
			imp.parent = o
		}
		for _, e := range o.Elements {
			link(o, e)
		}
		for _, ct := range o.ComplexTypes {
			link(o, ct)
		}
		for _, st := range o.SimpleTypes {
			st.parent = o
		}
	case *Element:
		o.parent = parent
		if o.ComplexType != nil {
			link(o, o.ComplexType)
		}
	case *ComplexType:
		o.parent = parent
		for _, e := range o.Sequence {
			link(o, e)
		}
		for _, a := range o.Attributes {
			a.parent = o
		}
		if cc := o.ComplexContent; cc != nil {
			cc.parent = o
			if r := cc.Restriction; r != nil {
				r.parent = cc
				for _, a := range r.Attributes {
					a.parent = r
				}
			}
		}
	case *SimpleType:
		o.parent = parent
	}
}
