package importer

import (
	"errors"
	"strings"
)

// ErrSchemaInvalid is returned when the schema set has errors and the import
// is configured to stop on them.
var ErrSchemaInvalid = errors.New("schema validation failed")

// ConfigError is a fatal error in the imported description: input that cannot
// be resolved by skipping an operation.
type ConfigError struct {
	Binding   string
	Operation string
	Message   string
	Cause     error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Binding != "" {
		b.WriteString("binding " + e.Binding)
		if e.Operation != "" {
			b.WriteString(" operation " + e.Operation)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
