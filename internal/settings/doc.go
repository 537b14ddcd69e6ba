// Package settings binds a step's untyped settings map onto the typed
// settings struct owned by the step implementation, and converts between
// native Go values and cty values for the YAML configuration path.
//
// Struct fields opt in with a `chain:"name"` tag; appending ",optional"
// makes a missing setting legal. Every step parses its settings exactly
// once, at construction time, so malformed configuration fails before the
// pipeline starts instead of surfacing mid-run.
package settings
