package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses a single HCL configuration file and translates it into the
// format-agnostic model. Duplicate names are kept so that resolution can
// report all of them.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("HCL loader started.")

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving configuration path %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := &config.Model{
		SourcePath: abs,
		Settings:   translateSettings(root.Configuration),
		Scenes:     root.Scenes,
	}
	for _, r := range root.Renderers {
		model.Renderers = append(model.Renderers, &config.RendererDefinition{
			Name:    r.Name,
			Type:    r.Type,
			Path:    r.Path,
			Options: r.Options,
		})
	}
	for _, ps := range root.ParameterSets {
		def, groupDiags := translateParameterSet(ctx, ps.Name, ps.Base, ps.Groups)
		diags = append(diags, groupDiags...)
		model.ParameterSets = append(model.ParameterSets, def)
	}
	for _, tc := range root.TestCases {
		def, caseDiags := translateTestCase(ctx, tc)
		diags = append(diags, caseDiags...)
		model.TestCases = append(model.TestCases, def)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid parameters in HCL file %s: %w", path, diags)
	}

	logger.Debug("HCL loading complete.",
		"scenes", len(model.Scenes),
		"renderers", len(model.Renderers),
		"parameter_sets", len(model.ParameterSets),
		"test_cases", len(model.TestCases),
	)
	return model, nil
}
