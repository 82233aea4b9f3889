package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BundlePath string // directory whose subdirectories are the bundle's modules

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it. It is the single choke point
// for configuration invariants.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BundlePath == "" {
		return nil, errors.New("BundlePath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
