package config

import (
	"fmt"
	"strings"

	"github.com/getmockd/wsdlkit/pkg/transport"
)

// ValidationError is a single configuration problem.
type ValidationError struct {
	Field   string // e.g. "import.transportRules[0].predicate"
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult collects every problem found in a configuration.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate checks a decoded configuration. Plugin names are checked for
// shape here; whether a name is registered is decided by the engine.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	validateNames(result, "reflect.protocols", cfg.Reflect.Protocols)
	validateNames(result, "reflect.mimeParameters", cfg.Reflect.MimeParameters)
	validateNames(result, "reflect.mimeReturns", cfg.Reflect.MimeReturns)
	validateNames(result, "import.protocols", cfg.Import.Protocols)
	validateNames(result, "import.mimeImporters", cfg.Import.MimeImporters)

	switch cfg.Import.Style {
	case "", "client", "server":
	default:
		result.AddError("import.style", fmt.Sprintf("invalid style %q, expected client or server", cfg.Import.Style))
	}

	seen := make(map[string]bool)
	for i, r := range cfg.Import.TransportRules {
		field := fmt.Sprintf("import.transportRules[%d]", i)
		if r.Name == "" {
			result.AddError(field+".name", "required")
		} else if seen[r.Name] {
			result.AddError(field+".name", fmt.Sprintf("duplicate rule %q", r.Name))
		}
		seen[r.Name] = true
		if r.Predicate == "" {
			result.AddError(field+".predicate", "required")
			continue
		}
		if _, err := transport.NewRule(r.Name, r.Predicate); err != nil {
			result.AddError(field+".predicate", err.Error())
		}
	}

	return result
}

func validateNames(result *ValidationResult, field string, names []string) {
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		switch {
		case strings.TrimSpace(n) == "":
			result.AddError(fmt.Sprintf("%s[%d]", field, i), "empty plugin name")
		case seen[n]:
			result.AddError(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("duplicate plugin %q", n))
		}
		seen[n] = true
	}
}
