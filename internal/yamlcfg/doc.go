// Package yamlcfg implements the YAML configuration loader and writer for
// the same format-agnostic model the HCL loader produces. YAML is the
// serialization format for pipeline descriptors: a model written with
// Marshal and loaded back validates and executes identically.
package yamlcfg
