package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// DocPath is the workflow document to compile (.json, .yaml, .yml).
	DocPath string
	// OutDir is where the generated script is written; "-" streams the
	// script to stdout instead.
	OutDir string
	// OptionsPath is an optional HCL export-options file.
	OptionsPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocPath == "" {
		return nil, errors.New("DocPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return &cfg, nil
}
