// Package payload defines the immutable container that carries one typed
// value between pipeline steps, plus the None sentinel used as the declared
// input type of source steps.
package payload

import "reflect"

// None is the sentinel payload type for steps that take no input. A source
// step declares None as its input type; the orchestrator seeds the chain
// with an empty container holding a None value.
type None struct{}

var noneType = reflect.TypeOf(None{})

// NoneType returns the reflect.Type of the None sentinel.
func NoneType() reflect.Type {
	return noneType
}

// Container is an immutable wrapper around exactly one payload value and
// its static type tag. Containers are replaced, never mutated: each step
// consumes its predecessor's container and produces a fresh one.
type Container struct {
	value any
	typ   reflect.Type
}

// New wraps a value in a fresh Container. The type tag is the static type
// parameter, not the dynamic type of the value, so a nil pointer or nil
// interface still carries its declared type.
func New[T any](v T) Container {
	return Container{value: v, typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Empty returns the sentinel container that seeds a pipeline run.
func Empty() Container {
	return New(None{})
}

// Value returns the wrapped value.
func (c Container) Value() any {
	return c.value
}

// Type returns the static type tag of the wrapped value.
func (c Container) Type() reflect.Type {
	return c.typ
}

// IsEmpty reports whether the container holds the None sentinel.
func (c Container) IsEmpty() bool {
	return c.typ == noneType
}

// Counter is implemented by payload types that can report their own item
// count for metrics.
type Counter interface {
	Len() int
}

// Len derives a best-effort item count from the wrapped value. The second
// return is false when the value is not countable; callers must never fail
// a step over it.
func (c Container) Len() (int, bool) {
	if c.value == nil || c.IsEmpty() {
		return 0, false
	}
	if counter, ok := c.value.(Counter); ok {
		return counter.Len(), true
	}
	rv := reflect.ValueOf(c.value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan, reflect.String:
		return rv.Len(), true
	}
	return 0, false
}
