// Package config defines the format-agnostic configuration model for
// pipelines and the Loader interface implemented by each configuration
// format (HCL, YAML).
package config
