// Package registry resolves step type identifiers from configuration to
// ready-to-run, type-erased executors.
//
// The catalog is populated once at startup by compiled-in modules and is
// read-only afterwards, so concurrent pipeline runs share one registry
// without locking.
package registry
