package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinePath string // .hcl or .yaml files, or a directory of them

	LogFormat   string
	LogLevel    string
	MetricsPort int
}

// NewConfig validates the raw configuration values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
