package yaml_adapter

import "gopkg.in/yaml.v2"

type document struct {
	Configuration *configuration `yaml:"configuration"`
	Scenes        []string       `yaml:"scenes"`
	Renderers     yaml.MapSlice  `yaml:"renderers"`
	ParameterSets yaml.MapSlice  `yaml:"parameter_sets"`
	TestCases     []testCase     `yaml:"test_cases"`
}

type configuration struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	OutputDir     string `yaml:"output_dir"`
	OutputDirDate *bool  `yaml:"output_dir_date"`
	ScenesDir     string `yaml:"scenes_dir"`
}

type renderer struct {
	Type    string `yaml:"type"`
	Path    string `yaml:"path"`
	Options string `yaml:"options"`
}

type testCase struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Renderer    string        `yaml:"renderer"`
	Params      yaml.MapSlice `yaml:"params"`
}
