package schema

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/getmockd/wsdlkit/pkg/logging"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

// Severity classifies a compilation event.
type Severity int

// Severities.
const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "Error"
	}
	return "Warning"
}

// Warning is one validation event.
type Warning struct {
	Severity Severity
	Message  string
	Object   Object
}

func (w Warning) String() string {
	return w.Severity.String() + ": " + w.Message
}

// Warnings is the ordered output of a compilation.
type Warnings []Warning

// HasErrors reports whether any entry has Error severity.
func (ws Warnings) HasErrors() bool {
	for _, w := range ws {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the Error-severity entries.
func (ws Warnings) Errors() Warnings {
	var out Warnings
	for _, w := range ws {
		if w.Severity == SeverityError {
			out = append(out, w)
		}
	}
	return out
}

// Strings renders each entry with its severity prefix.
func (ws Warnings) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

var xsdBuiltins = map[string]bool{
	"anyType": true, "anySimpleType": true, "string": true, "normalizedString": true,
	"token": true, "boolean": true, "decimal": true, "float": true, "double": true,
	"duration": true, "dateTime": true, "time": true, "date": true, "gYearMonth": true,
	"gYear": true, "gMonthDay": true, "gDay": true, "gMonth": true, "hexBinary": true,
	"base64Binary": true, "anyURI": true, "QName": true, "NOTATION": true,
	"integer": true, "nonPositiveInteger": true, "negativeInteger": true, "long": true,
	"int": true, "short": true, "byte": true, "nonNegativeInteger": true,
	"unsignedLong": true, "unsignedInt": true, "unsignedShort": true,
	"unsignedByte": true, "positiveInteger": true, "language": true, "Name": true,
	"NCName": true, "ID": true, "IDREF": true, "IDREFS": true, "ENTITY": true,
	"ENTITIES": true, "NMTOKEN": true, "NMTOKENS": true,
}

var soapEncBuiltins = map[string]bool{
	"Array": true, "Struct": true, "base64": true, "arrayType": true, "offset": true,
	"position": true, "root": true,
}

// Compiler validates schema sets.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler returns a compiler. A nil logger discards output.
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Compiler{logger: logger}
}

// Compile normalizes imports across the set, validates it and returns the
// resulting warnings. The warnings are also kept on the set.
func (c *Compiler) Compile(set *Set) Warnings {
	for _, sc := range set.Schemas() {
		link(nil, sc)
		for _, ns := range requiredImports(sc) {
			if sc.AddImport(ns) {
				c.logger.Debug("added schema import", "schema", sc.TargetNamespace, "import", ns)
			}
		}
	}

	set.warnings = nil
	v := &validator{set: set}
	v.run()
	set.warnings = v.warnings

	c.logger.Debug("compiled schema set",
		"fragments", set.Len(),
		"warnings", len(v.warnings),
		"errors", len(v.warnings.Errors()))
	return set.warnings
}

// requiredImports lists the namespaces sc must import: the SOAP encoding and
// WSDL namespaces, then every other namespace referenced by its definitions in
// order of first reference.
func requiredImports(sc *Schema) []string {
	var out []string
	seen := map[string]bool{sc.TargetNamespace: true, xmlns.XSD: true, "": true}
	add := func(ns string) {
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	add(xmlns.SOAPEnc)
	add(xmlns.WSDL)
	walk(sc, func(o Object) {
		for _, q := range references(o) {
			add(q.Space)
		}
	})
	return out
}

// references returns the qualified names an object points at.
func references(o Object) []xmlns.QName {
	var out []xmlns.QName
	add := func(q xmlns.QName) {
		if !q.IsZero() {
			out = append(out, q)
		}
	}
	switch x := o.(type) {
	case *Element:
		add(x.Ref)
		add(x.Type)
	case *Attribute:
		add(x.Ref)
		add(x.Type)
		add(x.ArrayOf)
	case *Restriction:
		add(x.Base)
	case *SimpleType:
		add(x.Base)
	}
	return out
}

// walk visits every object below sc in document order.
func walk(sc *Schema, fn func(Object)) {
	var visitType func(ct *ComplexType)
	var visitElement func(e *Element)
	visitElement = func(e *Element) {
		fn(e)
		if e.ComplexType != nil {
			visitType(e.ComplexType)
		}
	}
	visitType = func(ct *ComplexType) {
		fn(ct)
		for _, e := range ct.Sequence {
			visitElement(e)
		}
		for _, a := range ct.Attributes {
			fn(a)
		}
		if cc := ct.ComplexContent; cc != nil && cc.Restriction != nil {
			fn(cc.Restriction)
			for _, a := range cc.Restriction.Attributes {
				fn(a)
			}
		}
	}
	for _, e := range sc.Elements {
		visitElement(e)
	}
	for _, ct := range sc.ComplexTypes {
		visitType(ct)
	}
	for _, st := range sc.SimpleTypes {
		fn(st)
	}
}

type validator struct {
	set      *Set
	warnings Warnings
}

func (v *validator) errorf(o Object, format string, args ...any) {
	v.add(SeverityError, o, format, args...)
}

func (v *validator) warnf(o Object, format string, args ...any) {
	v.add(SeverityWarning, o, format, args...)
}

func (v *validator) add(sev Severity, o Object, format string, args ...any) {
	msg := fmt.Sprintf(format, args...) + " " + locate(o)
	v.warnings = append(v.warnings, Warning{Severity: sev, Message: msg, Object: o})
}

func (v *validator) run() {
	v.checkDuplicates()
	for _, sc := range v.set.Schemas() {
		for _, e := range sc.Elements {
			if e.Name == "" {
				v.errorf(e, "global element without a name in namespace '%s'", sc.TargetNamespace)
			}
		}
		walk(sc, v.check)
	}
}

func (v *validator) checkDuplicates() {
	for _, ns := range v.set.Namespaces() {
		elements := map[string]bool{}
		types := map[string]bool{}
		for _, sc := range v.set.Fragments(ns) {
			for _, e := range sc.Elements {
				if e.Name == "" {
					continue
				}
				if elements[e.Name] {
					v.errorf(e, "duplicate element '%s' in namespace '%s'", e.Name, ns)
				}
				elements[e.Name] = true
			}
			for _, ct := range sc.ComplexTypes {
				if types[ct.Name] {
					v.errorf(ct, "duplicate type '%s' in namespace '%s'", ct.Name, ns)
				}
				types[ct.Name] = true
			}
			for _, st := range sc.SimpleTypes {
				if types[st.Name] {
					v.errorf(st, "duplicate type '%s' in namespace '%s'", st.Name, ns)
				}
				types[st.Name] = true
			}
		}
	}
}

func (v *validator) check(o Object) {
	switch x := o.(type) {
	case *Element:
		v.checkElement(x)
	case *ComplexType:
		if x.Name == "" && isGlobal(x) {
			v.errorf(x, "global complex type without a name")
		}
	case *Attribute:
		if !x.Ref.IsZero() && !v.attributeResolves(x.Ref) {
			v.errorf(x, "attribute reference '%s' %s is not declared", x.Ref.Local, declaredIn(x))
		}
		if !x.Type.IsZero() && !v.typeResolves(x.Type) {
			v.errorf(x, "type '%s' of attribute '%s' %s is not declared", x.Type.Local, x.Name, declaredIn(x))
		}
		if !x.ArrayOf.IsZero() && !v.typeResolves(x.ArrayOf) {
			v.errorf(x, "array item type '%s' %s is not declared", x.ArrayOf.Local, declaredIn(x))
		}
	case *Restriction:
		if x.Base.IsZero() {
			v.errorf(x, "restriction without a base %s", declaredIn(x))
		} else if !v.typeResolves(x.Base) {
			v.errorf(x, "base type '%s' %s is not declared", x.Base.Local, declaredIn(x))
		}
	case *SimpleType:
		if !x.Base.IsZero() && !v.typeResolves(x.Base) {
			v.errorf(x, "base type '%s' of simple type '%s' %s is not declared", x.Base.Local, x.Name, declaredIn(x))
		}
	}
}

func (v *validator) checkElement(e *Element) {
	switch {
	case !e.Ref.IsZero():
		if v.set.Element(e.Ref) == nil {
			v.errorf(e, "element reference '%s' %s is not declared", e.Ref.Local, declaredIn(e))
		}
	case e.Name == "":
		if !isGlobal(e) {
			v.errorf(e, "element without a name or reference %s", declaredIn(e))
		}
	case !e.Type.IsZero():
		if !v.typeResolves(e.Type) {
			v.errorf(e, "type '%s' of element '%s' %s is not declared", e.Type.Local, e.Name, declaredIn(e))
		}
	case e.ComplexType == nil:
		v.warnf(e, "element '%s' %s has no type, anyType assumed", e.Name, declaredIn(e))
	}
	if e.MaxOccurs != Unbounded && e.MaxOccurs < e.MinOccurs {
		v.errorf(e, "element '%s' %s has maxOccurs %d below minOccurs %d", displayName(e), declaredIn(e), e.MaxOccurs, e.MinOccurs)
	}
}

func (v *validator) typeResolves(q xmlns.QName) bool {
	switch q.Space {
	case xmlns.XSD:
		return xsdBuiltins[q.Local]
	case xmlns.SOAPEnc:
		return soapEncBuiltins[q.Local] || xsdBuiltins[q.Local]
	}
	return v.set.ComplexType(q) != nil || v.set.SimpleType(q) != nil
}

func (v *validator) attributeResolves(q xmlns.QName) bool {
	switch q.Space {
	case xmlns.SOAPEnc:
		return soapEncBuiltins[q.Local]
	case xmlns.WSDL:
		return q.Local == "arrayType"
	case xmlns.XSD:
		return false
	}
	return false
}

func isGlobal(o Object) bool {
	_, ok := o.Parent().(*Schema)
	return ok
}

func displayName(e *Element) string {
	if e.Name != "" {
		return e.Name
	}
	return e.Ref.Local
}

// declaredIn describes where o is declared: the owning named type (or global
// element) and the namespace, found by walking the ancestor chain.
func declaredIn(o Object) string {
	var owner string
	for p := o.Parent(); p != nil; p = p.Parent() {
		switch x := p.(type) {
		case *ComplexType:
			if x.Name != "" && owner == "" {
				owner = "type '" + x.Name + "'"
			}
		case *SimpleType:
			if owner == "" {
				owner = "type '" + x.Name + "'"
			}
		case *Element:
			if isGlobal(x) && owner == "" {
				owner = "element '" + x.Name + "'"
			}
		}
	}
	ns := namespaceOf(o)
	if owner == "" {
		return "from namespace '" + ns + "'"
	}
	return "declared in " + owner + " from namespace '" + ns + "'"
}

func namespaceOf(o Object) string {
	for p := o; p != nil; p = p.Parent() {
		if sc, ok := p.(*Schema); ok {
			return sc.TargetNamespace
		}
	}
	return ""
}

// locate renders the source position when known, otherwise a structural path
// from the schema root down to o.
func locate(o Object) string {
	if pos := o.Pos(); pos.Known() {
		if pos.Column > 0 {
			return fmt.Sprintf("(line %d, column %d)", pos.Line, pos.Column)
		}
		return fmt.Sprintf("(line %d)", pos.Line)
	}
	var steps []string
	for p := o; p != nil; p = p.Parent() {
		steps = append(steps, step(p))
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return "(at " + strings.Join(steps, "/") + ")"
}

func step(o Object) string {
	switch x := o.(type) {
	case *Schema:
		return "schema[" + x.TargetNamespace + "]"
	case *Element:
		if x.Name == "" {
			return "element[ref=" + x.Ref.Local + "]"
		}
		return "element[" + x.Name + "]"
	case *ComplexType:
		if x.Name == "" {
			return "complexType"
		}
		return "complexType[" + x.Name + "]"
	case *SimpleType:
		return "simpleType[" + x.Name + "]"
	case *ComplexContent:
		return "complexContent"
	case *Restriction:
		return "restriction"
	case *Attribute:
		if x.Name == "" {
			return "attribute[ref=" + x.Ref.Local + "]"
		}
		return "attribute[" + x.Name + "]"
	case *Import:
		return "import[" + x.Namespace + "]"
	}
	return "?"
}
