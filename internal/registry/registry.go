package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that all compiled-in step packages implement to
// be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all registered step implementations for a single
// application instance.
type Registry struct {
	steps map[string]*RegisteredStep
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		steps: make(map[string]*RegisteredStep),
	}
}

// RegisterStep registers a step implementation under its type identifier.
// Registering the same identifier twice is a programmer error.
func (r *Registry) RegisterStep(stepType string, h *RegisteredStep) {
	if _, exists := r.steps[stepType]; exists {
		panic(fmt.Sprintf("step implementation with type '%s' already registered", stepType))
	}
	if h == nil || h.Build == nil {
		panic(fmt.Sprintf("step implementation '%s' registered without a Build function", stepType))
	}
	slog.Debug("Registering step implementation.", "type", stepType)
	r.steps[stepType] = h
}

// StepTypes returns the sorted identifiers of all registered
// implementations, for diagnostics.
func (r *Registry) StepTypes() []string {
	types := make([]string, 0, len(r.steps))
	for t := range r.steps {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
