package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Args    []string // positional search arguments
	JobPath string   // hcl job file, alternative to Args

	OutputPath      string
	Workers         int
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates the raw configuration assembled by the CLI layer.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Args) == 0 && cfg.JobPath == "" {
		return nil, errors.New("either positional arguments or a job file are required")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("workers cannot be negative")
	}

	return &cfg, nil
}
