package app

import (
	"fmt"
)

// ClearPolicy selects when generated scene-case files are deleted.
type ClearPolicy string

const (
	// ClearNever keeps every generated scene-case file.
	ClearNever ClearPolicy = "n"
	// ClearOnSuccess deletes the scene-case file after a successful render
	// and keeps it for inspection when rendering fails.
	ClearOnSuccess ClearPolicy = "y"
	// ClearAlways deletes the scene-case file after every render.
	ClearAlways ClearPolicy = "fy"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // evaluation configuration, .hcl or .yaml
	ScenesDir  string // overrides the scenes directory of the configuration

	Clear             ClearPolicy
	ContinueOnFailure bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Clear {
	case "":
		cfg.Clear = ClearOnSuccess
	case ClearNever, ClearOnSuccess, ClearAlways:
	default:
		return nil, fmt.Errorf("invalid clear policy %q, expected one of n, y, fy", cfg.Clear)
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q, expected text or json", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("invalid log level %q, expected debug, info, warn or error", cfg.LogLevel)
	}

	return &cfg, nil
}
