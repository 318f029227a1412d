package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Kind is the shape of a type.
type Kind string

// Kinds.
const (
	KindVoid    Kind = "void"
	KindScalar  Kind = "scalar"
	KindArray   Kind = "array"
	KindComplex Kind = "complex"

	// KindDocument is an untyped XML document fragment.
	KindDocument Kind = "document"

	// KindStream is a raw byte stream.
	KindStream Kind = "stream"
)

var scalarNames = map[string]bool{
	"string": true, "int": true, "long": true, "short": true, "byte": true,
	"unsignedInt": true, "unsignedLong": true, "unsignedShort": true, "unsignedByte": true,
	"boolean": true, "float": true, "double": true, "decimal": true, "integer": true,
	"dateTime": true, "date": true, "time": true, "duration": true, "base64Binary": true,
	"hexBinary": true, "anyURI": true, "QName": true,
}

// IsScalarName reports whether name is a supported XML Schema builtin.
func IsScalarName(name string) bool {
	return scalarNames[name]
}

// Type is a parameter or return shape.
type Type struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Elem   *Type   `json:"elem,omitempty" yaml:"elem,omitempty"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field is a member of a complex type.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Type Type   `json:"type" yaml:"type"`
}

// Void returns the empty return type.
func Void() Type { return Type{Kind: KindVoid} }

// Scalar returns a builtin scalar type.
func Scalar(name string) Type { return Type{Kind: KindScalar, Name: name} }

// ArrayOf returns an array of elem.
func ArrayOf(elem Type) Type { return Type{Kind: KindArray, Elem: &elem} }

// Complex returns a named complex type.
func Complex(name string, fields ...Field) Type {
	return Type{Kind: KindComplex, Name: name, Fields: fields}
}

// Document returns the untyped XML fragment type.
func Document() Type { return Type{Kind: KindDocument} }

// Stream returns the raw byte stream type.
func Stream() Type { return Type{Kind: KindStream} }

// IsVoid reports whether t is void. The zero Type is void.
func (t Type) IsVoid() bool {
	return t.Kind == KindVoid || t.Kind == ""
}

// IsFlat reports whether t fits a name/value pair: a scalar or an array of
// scalars.
func (t Type) IsFlat() bool {
	switch t.Kind {
	case KindScalar:
		return true
	case KindArray:
		return t.Elem != nil && t.Elem.Kind == KindScalar
	}
	return false
}

// ElementName is the name of the schema element a value of this type is
// wrapped in: the scalar name, the complex name, or ArrayOfX.
func (t Type) ElementName() string {
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			return "ArrayOfAnyType"
		}
		return "ArrayOf" + upperFirst(t.Elem.ElementName())
	case KindDocument:
		return "anyType"
	case KindStream:
		return "base64Binary"
	default:
		return t.Name
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindArray:
		if t.Elem == nil {
			return "[]"
		}
		return "[]" + t.Elem.String()
	case KindScalar, KindComplex:
		return t.Name
	case KindDocument, KindStream:
		return string(t.Kind)
	default:
		return string(KindVoid)
	}
}

// UnmarshalYAML accepts either the shorthand string form or a full mapping.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseType(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*t = parsed
		return nil
	}
	type plain Type
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Type(p)
	return nil
}

// ParseType parses the shorthand notation.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == string(KindVoid):
		return Void(), nil
	case strings.HasPrefix(s, "[]"):
		elem, err := ParseType(s[2:])
		if err != nil {
			return Type{}, err
		}
		if elem.IsVoid() {
			return Type{}, fmt.Errorf("array of void in %q", s)
		}
		return ArrayOf(elem), nil
	case s == string(KindDocument):
		return Document(), nil
	case s == string(KindStream):
		return Stream(), nil
	case IsScalarName(s):
		return Scalar(s), nil
	case strings.ContainsAny(s, " []{}"):
		return Type{}, fmt.Errorf("invalid type %q", s)
	default:
		return Complex(s), nil
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	_, n := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und).String(s[:n]) + s[n:]
}
