// Package hcl implements the HCL configuration loader: it discovers .hcl
// files, parses them against the schema package, and translates them into
// the format-agnostic config model.
package hcl
