package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all top-level blocks of a
// configuration file.
type fileRoot struct {
	Configuration *Configuration  `hcl:"configuration,block"`
	Scenes        []string        `hcl:"scenes,optional"`
	Renderers     []*Renderer     `hcl:"renderer,block"`
	ParameterSets []*ParameterSet `hcl:"parameter_set,block"`
	TestCases     []*TestCase     `hcl:"test_case,block"`
}

// Configuration holds the run-wide options.
type Configuration struct {
	Name          string `hcl:"name,optional"`
	Description   string `hcl:"description,optional"`
	OutputDir     string `hcl:"output_dir,optional"`
	OutputDirDate *bool  `hcl:"output_dir_date,optional"`
	ScenesDir     string `hcl:"scenes_dir,optional"`
}

// Renderer maps to a `renderer "<name>" {}` block.
type Renderer struct {
	Name    string `hcl:"name,label"`
	Type    string `hcl:"type"`
	Path    string `hcl:"path"`
	Options string `hcl:"options,optional"`
}

// ParameterSet maps to a `parameter_set "<name>" {}` block. Every attribute
// besides `base` declares a parameter group.
type ParameterSet struct {
	Name   string   `hcl:"name,label"`
	Base   []string `hcl:"base,optional"`
	Groups hcl.Body `hcl:",remain"`
}

// TestCase maps to a `test_case "<name>" {}` block.
type TestCase struct {
	Name        string  `hcl:"name,label"`
	Description string  `hcl:"description,optional"`
	Renderer    string  `hcl:"renderer"`
	Params      *Params `hcl:"params,block"`
}

// Params is the inline parameter set of a test case.
type Params struct {
	Base   []string `hcl:"base,optional"`
	Groups hcl.Body `hcl:",remain"`
}
