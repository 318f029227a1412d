package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

func countImports(sc *Schema, ns string) int {
	n := 0
	for _, imp := range sc.Imports {
		if imp.Namespace == ns {
			n++
		}
	}
	return n
}

func TestCompile_InjectsEncodingImportOnce(t *testing.T) {
	set := NewSet()
	frag := &Schema{TargetNamespace: "urn:a"}
	frag.AddElement(NewElement("Name", xmlns.XSDName("string")))
	set.Add(frag)

	warnings := NewCompiler(nil).Compile(set)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, countImports(frag, xmlns.SOAPEnc))
	assert.Equal(t, 1, countImports(frag, xmlns.WSDL))

	NewCompiler(nil).Compile(set)
	assert.Equal(t, 1, countImports(frag, xmlns.SOAPEnc), "second compile must not duplicate the import")
	assert.Len(t, frag.Imports, 2)
}

func TestCompile_SkipsSelfImport(t *testing.T) {
	set := NewSet()
	enc := &Schema{TargetNamespace: xmlns.SOAPEnc}
	set.Add(enc)

	NewCompiler(nil).Compile(set)
	assert.Equal(t, 0, countImports(enc, xmlns.SOAPEnc))
	assert.Equal(t, 1, countImports(enc, xmlns.WSDL))
}

func TestCompile_ImportsReferencedNamespaces(t *testing.T) {
	set := NewSet()
	b := &Schema{TargetNamespace: "urn:b"}
	b.AddComplexType(&ComplexType{Name: "Address"})
	set.Add(b)

	a := &Schema{TargetNamespace: "urn:a"}
	a.AddElement(NewElement("Home", xmlns.Name("urn:b", "Address")))
	set.Add(a)

	warnings := NewCompiler(nil).Compile(set)
	assert.False(t, warnings.HasErrors(), warnings.Strings())
	assert.True(t, a.HasImport("urn:b"))
	assert.False(t, b.HasImport("urn:a"))
}

func TestCompile_UnresolvedElementReference(t *testing.T) {
	set := NewSet()
	sc := &Schema{TargetNamespace: "urn:n"}
	sc.AddComplexType(&ComplexType{
		Name:     "T",
		Sequence: []*Element{{Ref: xmlns.Name("urn:n", "R"), MinOccurs: 1, MaxOccurs: 1}},
	})
	set.Add(sc)

	warnings := NewCompiler(nil).Compile(set)
	require.Len(t, warnings, 1)
	w := warnings[0]
	assert.Equal(t, SeverityError, w.Severity)
	assert.Contains(t, w.Message, "element reference 'R' declared in type 'T' from namespace 'urn:n'")
	assert.Contains(t, w.Message, "(at schema[urn:n]/complexType[T]/element[ref=R])")
	assert.Contains(t, w.String(), "Error: ")
	assert.True(t, warnings.HasErrors())
}

func TestCompile_UsesPositionWhenKnown(t *testing.T) {
	set := NewSet()
	sc := &Schema{TargetNamespace: "urn:n"}
	e := NewElement("Price", xmlns.Name("urn:n", "Money"))
	e.Position = Position{Line: 12, Column: 4}
	sc.AddElement(e)
	set.Add(sc)

	warnings := NewCompiler(nil).Compile(set)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "type 'Money' of element 'Price' from namespace 'urn:n'")
	assert.Contains(t, warnings[0].Message, "(line 12, column 4)")
}

func TestCompile_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		build    func(sc *Schema)
		severity Severity
		contains string
	}{
		{
			name: "duplicate element",
			build: func(sc *Schema) {
				sc.AddElement(NewElement("A", xmlns.XSDName("string")))
				sc.AddElement(NewElement("A", xmlns.XSDName("int")))
			},
			severity: SeverityError,
			contains: "duplicate element 'A' in namespace 'urn:n'",
		},
		{
			name: "unknown builtin",
			build: func(sc *Schema) {
				sc.AddElement(NewElement("A", xmlns.XSDName("strang")))
			},
			severity: SeverityError,
			contains: "type 'strang' of element 'A'",
		},
		{
			name: "untyped element",
			build: func(sc *Schema) {
				sc.AddElement(&Element{Name: "Loose", MinOccurs: 1, MaxOccurs: 1})
			},
			severity: SeverityWarning,
			contains: "element 'Loose' from namespace 'urn:n' has no type",
		},
		{
			name: "occurrence bounds",
			build: func(sc *Schema) {
				sc.AddElement(&Element{Name: "Few", Type: xmlns.XSDName("int"), MinOccurs: 3, MaxOccurs: 2})
			},
			severity: SeverityError,
			contains: "maxOccurs 2 below minOccurs 3",
		},
		{
			name: "unknown restriction base",
			build: func(sc *Schema) {
				sc.AddComplexType(&ComplexType{
					Name:           "ArrayOfThing",
					ComplexContent: &ComplexContent{Restriction: &Restriction{Base: xmlns.Name("urn:n", "Missing")}},
				})
			},
			severity: SeverityError,
			contains: "base type 'Missing' declared in type 'ArrayOfThing'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet()
			sc := &Schema{TargetNamespace: "urn:n"}
			tt.build(sc)
			set.Add(sc)

			warnings := NewCompiler(nil).Compile(set)
			require.NotEmpty(t, warnings)
			assert.Equal(t, tt.severity, warnings[0].Severity)
			assert.Contains(t, warnings[0].Message, tt.contains)
		})
	}
}

func TestCompile_SOAPArrayRestrictionResolves(t *testing.T) {
	set := NewSet()
	sc := &Schema{TargetNamespace: "urn:n"}
	sc.AddComplexType(&ComplexType{
		Name: "ArrayOfString",
		ComplexContent: &ComplexContent{Restriction: &Restriction{
			Base: xmlns.Name(xmlns.SOAPEnc, "Array"),
			Attributes: []*Attribute{{
				Ref:     xmlns.Name(xmlns.SOAPEnc, "arrayType"),
				ArrayOf: xmlns.XSDName("string"),
			}},
		}},
	})
	set.Add(sc)

	warnings := NewCompiler(nil).Compile(set)
	assert.Empty(t, warnings)
	assert.Equal(t, warnings, set.Warnings())
}

func TestCompile_RecursiveDeclarations(t *testing.T) {
	set := NewSet()
	sc := &Schema{TargetNamespace: "urn:t"}
	sc.AddElement(&Element{
		Name:      "Node",
		MinOccurs: 1,
		MaxOccurs: 1,
		ComplexType: &ComplexType{Sequence: []*Element{
			NewElement("value", xmlns.XSDName("string")),
			{Ref: xmlns.Name("urn:t", "Node"), MinOccurs: 0, MaxOccurs: 1},
		}},
	})
	sc.AddComplexType(&ComplexType{
		Name: "Tree",
		Sequence: []*Element{
			{Name: "children", Type: xmlns.Name("urn:t", "Tree"), MinOccurs: 0, MaxOccurs: Unbounded},
		},
	})
	set.Add(sc)

	warnings := NewCompiler(nil).Compile(set)
	assert.Empty(t, warnings, warnings.Strings())
	assert.False(t, sc.HasImport("urn:t"))
}
