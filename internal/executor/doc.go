// Package executor wraps strongly-typed steps behind a uniform, non-generic
// execution interface so a heterogeneous chain can be driven by one loop.
//
// The wrapper stores the step's input and output types as data at
// construction time. The only runtime type check in the whole pipeline
// happens inside Run: one explicit, checked downcast per step per
// execution, failing with a typed TypeMismatchError rather than an opaque
// interface conversion panic.
package executor
