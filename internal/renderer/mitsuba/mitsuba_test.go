package mitsuba

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lteval/internal/paramset"
	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/renderer"
	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

const settingsTemplate = `<?xml version="1.0" encoding="utf-8"?>
<scene version="0.5.0">
    <integrator type="direct"/>
    <sensor type="perspective">
        <float name="fov" value="45"/>
        <sampler type="ldsampler">
            <integer name="sampleCount" value="4"/>
        </sampler>
        <film type="hdrfilm">
            <integer name="width" value="64"/>
            <rfilter type="gaussian"/>
        </film>
    </sensor>
    <integrator type="path"/>
</scene>
`

func readDoc(t *testing.T, content string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(content))
	return doc
}

func resolved(groups ...paramset.Group) *paramset.Set {
	return paramset.New(nil, groups...).ResolveBase(nil)
}

func TestBuildFragments(t *testing.T) {
	frags := BuildFragments(resolved(paramset.Group{Name: "integrator", Params: []paramset.Parameter{
		{Name: "type", Value: cty.StringVal("pssmlt")},
		{Name: "bidirectional", Kind: "boolean", Value: cty.True},
		{Name: "maxDepth", Kind: "integer", Value: cty.NumberIntVal(10)},
		{Name: "pLarge", Kind: "float", Value: cty.NumberFloatVal(0.25)},
		{Name: "color", Kind: "rgb", Value: cty.TupleVal([]cty.Value{cty.NumberFloatVal(0.5), cty.NumberIntVal(1), cty.NumberIntVal(0)})},
	}}))
	require.Len(t, frags, 1)

	doc := etree.NewDocument()
	doc.SetRoot(frags[0].Element)
	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, `<integrator type="pssmlt">`+
		`<boolean name="bidirectional" value="true"/>`+
		`<float name="pLarge" value="0.25"/>`+
		`<integer name="maxDepth" value="10"/>`+
		`<rgb name="color" value="0.5, 1, 0"/>`+
		`</integrator>`, out)
}

func TestBuildFragments_IntegralFloats(t *testing.T) {
	frags := BuildFragments(resolved(paramset.Group{Name: "bsdf", Params: []paramset.Parameter{
		{Name: "type", Value: cty.StringVal("roughconductor")},
		{Name: "alpha", Kind: "float", Value: cty.NumberIntVal(1)},
		{Name: "samples", Kind: "integer", Value: cty.NumberIntVal(4)},
	}}))
	require.Len(t, frags, 1)

	doc := etree.NewDocument()
	doc.SetRoot(frags[0].Element)
	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, `<bsdf type="roughconductor">`+
		`<float name="alpha" value="1.0"/>`+
		`<integer name="samples" value="4"/>`+
		`</bsdf>`, out)
}

func TestMaterialize_Anchors(t *testing.T) {
	doc := readDoc(t, settingsTemplate)
	frags := BuildFragments(resolved(
		paramset.Group{Name: "integrator", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("bdpt")}}},
		paramset.Group{Name: "sampler", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("independent")}}},
		paramset.Group{Name: "rfilter", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("box")}}},
		paramset.Group{Name: "emitter", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("constant")}}},
	))
	require.NoError(t, Materialize(doc, frags))

	root := doc.Root()
	integrators := root.SelectElements("integrator")
	require.Len(t, integrators, 1, "integrator must never be duplicated")
	assert.Equal(t, "bdpt", integrators[0].SelectAttrValue("type", ""))
	assert.Equal(t, integrators[0], root.ChildElements()[0])

	sensor := root.SelectElement("sensor")
	samplers := sensor.SelectElements("sampler")
	require.Len(t, samplers, 1)
	assert.Equal(t, "independent", samplers[0].SelectAttrValue("type", ""))
	children := sensor.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, []string{"float", "sampler", "film"}, []string{children[0].Tag, children[1].Tag, children[2].Tag})

	film := sensor.SelectElement("film")
	filmChildren := film.ChildElements()
	require.Len(t, filmChildren, 2)
	assert.Equal(t, "integer", filmChildren[0].Tag)
	assert.Equal(t, "rfilter", filmChildren[1].Tag)
	assert.Equal(t, "box", filmChildren[1].SelectAttrValue("type", ""))

	rootChildren := root.ChildElements()
	last := rootChildren[len(rootChildren)-1]
	assert.Equal(t, "include", last.Tag)
	assert.Equal(t, DescriptionInclude, last.SelectAttrValue("filename", ""))
	assert.Equal(t, "emitter", rootChildren[len(rootChildren)-2].Tag)
}

func TestMaterialize_FragmentsAreReusable(t *testing.T) {
	frags := BuildFragments(resolved(paramset.Group{Name: "integrator", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("path")}}}))
	first := readDoc(t, settingsTemplate)
	second := readDoc(t, settingsTemplate)
	require.NoError(t, Materialize(first, frags))
	require.NoError(t, Materialize(second, frags))

	a, err := first.WriteToString()
	require.NoError(t, err)
	b, err := second.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Nil(t, frags[0].Element.Parent())
}

func TestMaterialize_MissingAnchors(t *testing.T) {
	sampler := BuildFragments(resolved(paramset.Group{Name: "sampler", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("independent")}}}))

	var anchorErr *TemplateAnchorMissingError
	err := Materialize(readDoc(t, `<scene><sensor/></scene>`), sampler)
	require.ErrorAs(t, err, &anchorErr)
	assert.Equal(t, "sensor/film", anchorErr.Anchor)

	err = Materialize(readDoc(t, `<settings/>`), nil)
	require.ErrorAs(t, err, &anchorErr)
	assert.Equal(t, "scene", anchorErr.Anchor)

	require.NoError(t, Materialize(readDoc(t, `<scene/>`), BuildFragments(resolved(
		paramset.Group{Name: "integrator", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("path")}}},
	))))
}

func TestMaterialize_AddsDeclaration(t *testing.T) {
	doc := readDoc(t, `<scene/>`)
	require.NoError(t, Materialize(doc, nil))
	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`), out)
	assert.Contains(t, out, `<include filename="description.xml"/>`)
}

func newScene(t *testing.T, settings string) scene.Scene {
	t.Helper()
	s := scene.Scene{Name: "pool", Path: filepath.Join(t.TempDir(), "pool")}
	dir := s.RendererDir(Kind)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range map[string]string{
		"scene.xml":       `<scene version="0.5.0"><include filename="__lteval_case.xml"/></scene>`,
		"settings.xml":    settings,
		"description.xml": `<scene version="0.5.0"/>`,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return s
}

type lineRecorder struct{ lines []string }

func (r *lineRecorder) WriteLine(line string) { r.lines = append(r.lines, line) }

func TestRenderer_PrepareRenderClear(t *testing.T) {
	s := newScene(t, settingsTemplate)
	exe := filepath.Join(t.TempDir(), "mitsuba")
	script := "#!/bin/sh\n" +
		"for last; do :; done\n" +
		"printf 'Rendering: 100%%\\b\\b\\n'\n" +
		`cp "$last" "${last%.xml}.exr"` + "\n"
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))

	rec := &lineRecorder{}
	r := New(renderer.Options{Executable: exe, Args: []string{"-q"}, Sink: rec})
	assert.Equal(t, Kind, r.Kind())
	assert.Equal(t, Suffix, r.SceneSuffix())
	assert.True(t, r.SceneFilesExist(s))

	tc := &testcase.TestCase{Name: "ptracer", Renderer: "m", Params: resolved(
		paramset.Group{Name: "integrator", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("path")}}},
	)}
	ctx := context.Background()
	require.NoError(t, r.PrepareCase(ctx, s, tc))

	casePath := filepath.Join(s.RendererDir(Kind), "__lteval_ptracer.xml")
	content, err := os.ReadFile(casePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `<integrator type="path"/>`)
	assert.NotContains(t, string(content), `type="direct"`)
	settings, err := os.ReadFile(filepath.Join(s.RendererDir(Kind), "settings.xml"))
	require.NoError(t, err)
	assert.Equal(t, settingsTemplate, string(settings), "template must stay untouched")

	out := t.TempDir()
	require.NoError(t, r.RenderCase(ctx, s, tc, out))
	assert.FileExists(t, filepath.Join(out, "ptracer.exr"))
	assert.Equal(t, []string{"Rendering: 100%"}, rec.lines)

	require.NoError(t, r.ClearCase(s, tc))
	assert.NoFileExists(t, casePath)
	require.NoError(t, r.ClearScene(s))
	assert.FileExists(t, filepath.Join(s.RendererDir(Kind), "settings.xml"))
}

func TestRenderer_FailedRender(t *testing.T) {
	s := newScene(t, settingsTemplate)
	tc := &testcase.TestCase{Name: "broken", Params: resolved()}

	exe := filepath.Join(t.TempDir(), "mitsuba")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	r := New(renderer.Options{Executable: exe})
	require.NoError(t, r.PrepareCase(context.Background(), s, tc))

	stale := filepath.Join(s.RendererDir(Kind), "__lteval_broken.exr")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	err := r.RenderCase(context.Background(), s, tc, t.TempDir())
	assert.ErrorIs(t, err, renderer.ErrNoResult, "a stale image from an earlier run must not count")

	failing := filepath.Join(t.TempDir(), "mitsuba")
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/sh\nexit 1\n"), 0o755))
	err = New(renderer.Options{Executable: failing}).RenderCase(context.Background(), s, tc, t.TempDir())
	var exitErr *renderer.ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestRenderer_CachesFragments(t *testing.T) {
	s := newScene(t, settingsTemplate)
	r := New(renderer.Options{}).(*Renderer)
	tc := &testcase.TestCase{Name: "cached", Params: resolved(
		paramset.Group{Name: "integrator", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("path")}}},
	)}
	require.NoError(t, r.PrepareCase(context.Background(), s, tc))

	tc.Params = resolved(paramset.Group{Name: "integrator", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("bdpt")}}})
	require.NoError(t, r.PrepareCase(context.Background(), s, tc))
	content, err := os.ReadFile(r.CasePath(s, tc))
	require.NoError(t, err)
	assert.Contains(t, string(content), `type="path"`)
}

func TestRenderer_AnchorErrorNamesTemplate(t *testing.T) {
	s := newScene(t, `<scene><sensor/></scene>`)
	r := New(renderer.Options{})
	tc := &testcase.TestCase{Name: "s", Params: resolved(
		paramset.Group{Name: "sampler", Params: []paramset.Parameter{{Name: "type", Value: cty.StringVal("independent")}}},
	)}

	err := r.PrepareCase(context.Background(), s, tc)
	var anchorErr *TemplateAnchorMissingError
	require.ErrorAs(t, err, &anchorErr)
	assert.Equal(t, filepath.Join(s.RendererDir(Kind), "settings.xml"), anchorErr.Template)
	assert.NoFileExists(t, r.(*Renderer).CasePath(s, tc))
}

func TestModule(t *testing.T) {
	reg := registry.New()
	(&Module{}).Register(reg)
	assert.Equal(t, []string{Kind}, reg.Kinds())
}
