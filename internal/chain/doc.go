// Package chain validates that a configured pipeline is internally
// type-consistent before any step executes. Validation is total: on failure
// zero steps have run and zero step side effects have occurred.
package chain
