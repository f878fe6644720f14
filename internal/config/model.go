package config

import (
	"path/filepath"

	"github.com/vk/lteval/internal/paramset"
)

// Model is the unified, format-agnostic representation of an evaluation
// configuration file.
type Model struct {
	// SourcePath is the absolute path of the file the model was loaded from.
	SourcePath    string
	Settings      Settings
	Scenes        []string
	Renderers     []*RendererDefinition
	ParameterSets []*ParameterSetDefinition
	TestCases     []*TestCaseDefinition
}

// Settings holds the run-wide options of the `configuration` section.
type Settings struct {
	Name          string
	Description   string
	OutputDir     string
	OutputDirDate bool
	ScenesDir     string
}

// RendererDefinition binds a configured renderer name to a renderer kind
// and its executable.
type RendererDefinition struct {
	Name    string
	Type    string
	Path    string
	Options string
}

// ParameterSetDefinition is a declared, unresolved parameter set. Test case
// parameters use the same shape with an empty Name.
type ParameterSetDefinition struct {
	Name   string
	Base   []string
	Groups []paramset.Group
}

// Set instantiates the definition as a not-ready parameter set.
func (d *ParameterSetDefinition) Set() *paramset.Set {
	if d == nil {
		return paramset.New(nil)
	}
	return paramset.New(d.Base, d.Groups...)
}

// TestCaseDefinition is a declared test case.
type TestCaseDefinition struct {
	Name        string
	Description string
	Renderer    string
	Params      *ParameterSetDefinition
}

// Defaults applied by every loader when the configuration omits a value.
const (
	DefaultOutputDir = "results"
	DefaultScenesDir = "scenes"
)

// DefaultSettings returns the settings used for omitted options.
func DefaultSettings() Settings {
	return Settings{
		OutputDir:     DefaultOutputDir,
		OutputDirDate: true,
		ScenesDir:     DefaultScenesDir,
	}
}

// ResolvePath interprets p relative to the directory of the configuration
// file. Absolute paths are returned cleaned.
func (m *Model) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(m.SourcePath), p)
}
