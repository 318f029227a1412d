package engine

// Error is a simple error type for engine errors.
// It allows defining sentinel errors as constants.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors for plugin registration and lookup.
var (
	// ErrNilFactory is returned when registering a nil plugin factory.
	ErrNilFactory = Error("plugin factory cannot be nil")

	// ErrEmptyName is returned when registering a plugin without a name.
	ErrEmptyName = Error("plugin name cannot be empty")

	// ErrPluginExists is returned when a name is already registered for the
	// same plugin kind.
	ErrPluginExists = Error("plugin with this name already exists")

	// ErrPluginNotFound is returned when configuration names a plugin that
	// is not registered.
	ErrPluginNotFound = Error("plugin not found")
)
