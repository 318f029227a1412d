package importer

import "strings"

// WarningFlags is the set of warning categories raised by an import.
type WarningFlags uint32

// Warning categories.
const (
	OptionalExtensionsIgnored WarningFlags = 1 << iota
	RequiredExtensionsIgnored
	UnsupportedOperationsIgnored
	UnsupportedBindingsIgnored
	EncodingStyleUnsupported
	SchemaValidation
	NoMethodsGenerated
)

var warningNames = []struct {
	flag WarningFlags
	name string
}{
	{OptionalExtensionsIgnored, "optional extensions ignored"},
	{RequiredExtensionsIgnored, "required extensions ignored"},
	{UnsupportedOperationsIgnored, "unsupported operations ignored"},
	{UnsupportedBindingsIgnored, "unsupported bindings ignored"},
	{EncodingStyleUnsupported, "encoding style unsupported"},
	{SchemaValidation, "schema validation"},
	{NoMethodsGenerated, "no methods generated"},
}

// Has reports whether every flag in f is set.
func (w WarningFlags) Has(f WarningFlags) bool {
	return w&f == f
}

func (w WarningFlags) String() string {
	if w == 0 {
		return "none"
	}
	return strings.Join(w.Names(), ", ")
}

// Names returns the name of every set flag.
func (w WarningFlags) Names() []string {
	var names []string
	for _, wn := range warningNames {
		if w.Has(wn.flag) {
			names = append(names, wn.name)
		}
	}
	return names
}
