package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/hcl_adapter"
	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/testcase"
	"github.com/vk/lteval/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	now      func() time.Time
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger and a registry holding the given renderer
// modules, or every core module when none are given.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Renderer modules registered.", "count", len(modules), "kinds", reg.Kinds())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		now:      time.Now,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// loaderFor picks the configuration loader by file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl_adapter.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration file %q, expected .hcl, .yaml or .yml", path)
	}
}

// load reads the configuration file and resolves its test cases.
func (a *App) load(ctx context.Context) (*config.Model, []*testcase.TestCase, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.ConfigPath == "" {
		return nil, nil, fmt.Errorf("no configuration file given")
	}

	loader, err := loaderFor(a.config.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	model, err := loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "path", model.SourcePath)

	cases, _, err := testcase.Resolve(ctx, model)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration %s:\n%w", model.SourcePath, err)
	}
	logger.Info("Test cases resolved.", "count", len(cases))
	return model, cases, nil
}
