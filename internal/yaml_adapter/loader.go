package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"gopkg.in/yaml.v2"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a YAML configuration file into the format-agnostic model.
// Every malformed entry is reported, not only the first one.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("YAML loader started.")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving configuration path %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	model := &config.Model{
		SourcePath: abs,
		Settings:   translateSettings(doc.Configuration),
		Scenes:     doc.Scenes,
	}

	var errs []error
	for _, item := range doc.Renderers {
		def, err := translateRenderer(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		model.Renderers = append(model.Renderers, def)
	}
	for _, item := range doc.ParameterSets {
		name := fmt.Sprint(item.Key)
		body, ok := item.Value.(yaml.MapSlice)
		if item.Value != nil && !ok {
			errs = append(errs, fmt.Errorf("parameter_sets.%s: expected a mapping of groups", name))
			continue
		}
		def, err := translateParameterSet("parameter_sets."+name, body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		def.Name = name
		model.ParameterSets = append(model.ParameterSets, def)
	}
	for i, tc := range doc.TestCases {
		def := &config.TestCaseDefinition{
			Name:        tc.Name,
			Description: tc.Description,
			Renderer:    tc.Renderer,
		}
		if tc.Params != nil {
			params, err := translateParameterSet(fmt.Sprintf("test_cases[%d].params", i), tc.Params)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			def.Params = params
		}
		model.TestCases = append(model.TestCases, def)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid YAML configuration %s: %w", path, err)
	}

	logger.Debug("YAML loading complete.",
		"scenes", len(model.Scenes),
		"renderers", len(model.Renderers),
		"parameter_sets", len(model.ParameterSets),
		"test_cases", len(model.TestCases),
	)
	return model, nil
}

func translateSettings(c *configuration) config.Settings {
	s := config.DefaultSettings()
	if c == nil {
		return s
	}
	s.Name = c.Name
	s.Description = c.Description
	if c.OutputDir != "" {
		s.OutputDir = c.OutputDir
	}
	if c.OutputDirDate != nil {
		s.OutputDirDate = *c.OutputDirDate
	}
	if c.ScenesDir != "" {
		s.ScenesDir = c.ScenesDir
	}
	return s
}

// translateRenderer re-encodes one renderer entry so that it can be decoded
// into its typed form.
func translateRenderer(item yaml.MapItem) (*config.RendererDefinition, error) {
	name := fmt.Sprint(item.Key)
	raw, err := yaml.Marshal(item.Value)
	if err != nil {
		return nil, fmt.Errorf("renderers.%s: %w", name, err)
	}
	var r renderer
	if err := yaml.UnmarshalStrict(raw, &r); err != nil {
		return nil, fmt.Errorf("renderers.%s: %w", name, err)
	}
	return &config.RendererDefinition{Name: name, Type: r.Type, Path: r.Path, Options: r.Options}, nil
}
