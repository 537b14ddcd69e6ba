package registry

import "github.com/vk/chainline/internal/executor"

// RegisteredStep holds the Go parts needed to construct one step
// implementation.
type RegisteredStep struct {
	// NewSettings returns a pointer to a fresh settings struct for this
	// implementation, or nil when the step takes no settings. The struct's
	// fields carry `chain:` tags understood by the settings package.
	NewSettings func() any

	// Build constructs the step with its decoded settings and wraps it in a
	// type-erased executor. name is the instance display name from the
	// descriptor; settings is the value produced by NewSettings (nil when
	// NewSettings is nil).
	Build func(name string, settings any) (executor.Erased, error)
}

// Validator is implemented by settings structs that need semantic checks
// beyond field binding (value ranges, cross-field rules). It runs after
// Decode and before Build; a returned error is a configuration error.
type Validator interface {
	Validate() error
}
