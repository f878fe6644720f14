package hcl_adapter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/paramset"
	"github.com/vk/lteval/internal/testcase"
)

var ctyComparer = cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) })

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eval.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleConfig = `
configuration {
  name            = "pool"
  description     = "Pool scenes"
  output_dir      = "out"
  output_dir_date = false
}

scenes = ["pool_simple", "pool_caustics"]

renderer "mitsubaRenderer_0_5" {
  type    = "mitsuba_0_5"
  path    = "bin/mitsuba"
  options = "-p 4"
}

parameter_set "mitsubaSampler" {
  sampler = [["type", "", "independent"], ["sampleCount", "integer", 64]]
}

parameter_set "mitsubaPtracer" {
  base       = ["mitsubaSampler"]
  integrator = [["type", "", "path"], ["maxDepth", "integer", 10], ["strictNormals", "boolean", true]]
  film       = [["pixelFormat", "string", "rgb"], ["crop", "integer", [0, 0, 64, 64]]]
}

test_case "mitsubaPtracer" {
  description = "Mitsuba - path tracer"
  renderer    = "mitsubaRenderer_0_5"
  params {
    base    = ["mitsubaPtracer"]
    sampler = [["sampleCount", "integer", 256]]
  }
}

test_case "bare" {
  renderer = "mitsubaRenderer_0_5"
}
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, model.SourcePath)
	assert.Equal(t, config.Settings{
		Name:          "pool",
		Description:   "Pool scenes",
		OutputDir:     "out",
		OutputDirDate: false,
		ScenesDir:     config.DefaultScenesDir,
	}, model.Settings)
	assert.Equal(t, []string{"pool_simple", "pool_caustics"}, model.Scenes)
	require.Len(t, model.Renderers, 1)
	assert.Equal(t, &config.RendererDefinition{
		Name: "mitsubaRenderer_0_5", Type: "mitsuba_0_5", Path: "bin/mitsuba", Options: "-p 4",
	}, model.Renderers[0])

	require.Len(t, model.ParameterSets, 2)
	ptracer := model.ParameterSets[1]
	assert.Equal(t, "mitsubaPtracer", ptracer.Name)
	assert.Equal(t, []string{"mitsubaSampler"}, ptracer.Base)
	require.Len(t, ptracer.Groups, 2)
	assert.Equal(t, "integrator", ptracer.Groups[0].Name, "groups keep declaration order")
	assert.Equal(t, "film", ptracer.Groups[1].Name)

	want := []paramset.Parameter{
		{Name: "type", Value: cty.StringVal("path")},
		{Name: "maxDepth", Kind: "integer", Value: cty.NumberIntVal(10)},
		{Name: "strictNormals", Kind: "boolean", Value: cty.True},
	}
	if diff := cmp.Diff(want, ptracer.Groups[0].Params, ctyComparer); diff != "" {
		t.Fatalf("integrator mismatch (-want +got):\n%s", diff)
	}
	crop := ptracer.Groups[1].Params[1].Value
	assert.True(t, paramset.IsList(crop))
	assert.Equal(t, "0, 0, 64, 64", paramset.FormatPlain(crop))

	require.Len(t, model.TestCases, 2)
	tc := model.TestCases[0]
	assert.Equal(t, "Mitsuba - path tracer", tc.Description)
	assert.Equal(t, []string{"mitsubaPtracer"}, tc.Params.Base)
	require.Len(t, tc.Params.Groups, 1)
	assert.Nil(t, model.TestCases[1].Params)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `scenes = []`)
	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), model.Settings)
	assert.Empty(t, model.TestCases)
}

func TestLoad_KeepsDuplicateNames(t *testing.T) {
	path := writeConfig(t, `
parameter_set "a" {}
parameter_set "a" {}
test_case "t" { renderer = "r" }
test_case "t" { renderer = "r" }
`)
	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, model.ParameterSets, 2)
	assert.Len(t, model.TestCases, 2)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `parameter_set "a" {`, "failed to parse HCL file"},
		{"missing renderer", `test_case "t" {}`, "failed to decode HCL file"},
		{"group not a list", `parameter_set "a" { sampler = "independent" }`, "Invalid parameter group"},
		{"short tuple", `parameter_set "a" { sampler = [["type", ""]] }`, "expected a [name, kind, value] tuple"},
		{"kind not a string", `parameter_set "a" { sampler = [["type", ["x"], "y"]] }`, "parameter kind must be a string"},
		{"kind is a number", `parameter_set "a" { sampler = [["count", 5, 2]] }`, "parameter kind must be a string"},
		{"name is a bool", `parameter_set "a" { sampler = [[true, "", 2]] }`, "parameter name must be a string"},
		{"null value", `parameter_set "a" { sampler = [["type", "", null]] }`, `value of "type" must be set`},
		{"nested block", `test_case "t" {
  renderer = "r"
  params {
    sampler {}
  }
}`, "Blocks are not allowed here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Load(context.Background(), writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	assert.Error(t, err)
}

func TestWriteResolved_ReadsBack(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), writeConfig(t, sampleConfig))
	require.NoError(t, err)
	cases, _, err := testcase.Resolve(context.Background(), model)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResolved(&buf, cases))
	out := buf.String()
	assert.Contains(t, out, `test_case "mitsubaPtracer" {`)
	assert.Contains(t, out, `description = "Mitsuba - path tracer"`)
	assert.NotContains(t, out, "base")

	reloaded, err := NewLoader().Load(context.Background(), writeConfig(t, out))
	require.NoError(t, err)
	require.Len(t, reloaded.TestCases, 2)
	for i, tc := range reloaded.TestCases {
		assert.Equal(t, cases[i].Name, tc.Name)
		want := cases[i].Params.Groups()
		got := tc.Params.Set().ResolveBase(nil).Groups()
		if diff := cmp.Diff(want, got, ctyComparer); diff != "" {
			t.Fatalf("test case %s mismatch (-want +got):\n%s", tc.Name, diff)
		}
	}
}
