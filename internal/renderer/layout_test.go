package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

func newScene(t *testing.T, kind string, files ...string) scene.Scene {
	t.Helper()
	root := t.TempDir()
	s := scene.Scene{Name: "pool", Path: filepath.Join(root, "pool")}
	require.NoError(t, os.MkdirAll(s.RendererDir(kind), 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(s.RendererDir(kind), f), []byte(f), 0o644))
	}
	return s
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("mitsuba_0_5", ".xml")
	s := scene.Scene{Name: "pool", Path: "/scenes/pool"}
	tc := &testcase.TestCase{Name: "ptracer"}

	assert.Equal(t, "mitsuba_0_5", l.Kind())
	assert.Equal(t, ".xml", l.SceneSuffix())
	assert.Equal(t, "/scenes/pool/mitsuba_0_5/settings.xml", l.TemplatePath(s, SettingsStem))
	assert.Equal(t, "/scenes/pool/mitsuba_0_5/__lteval_ptracer.xml", l.CasePath(s, tc))
	assert.Equal(t, "/scenes/pool/mitsuba_0_5/__lteval_ptracer.exr", l.ResultPath(s, tc))
}

func TestLayoutSceneFilesExist(t *testing.T) {
	l := NewLayout("pbrt_3", ".pbrt")
	complete := newScene(t, "pbrt_3", "scene.pbrt", "settings.pbrt", "description.pbrt")
	assert.True(t, l.SceneFilesExist(complete))

	partial := newScene(t, "pbrt_3", "scene.pbrt", "settings.pbrt")
	assert.False(t, l.SceneFilesExist(partial))
}

func TestLayoutClear(t *testing.T) {
	l := NewLayout("pbrt_3", ".pbrt")
	s := newScene(t, "pbrt_3",
		"scene.pbrt", "settings.pbrt", "description.pbrt", "reference.exr",
		"__lteval_a.pbrt", "__lteval_b.pbrt", "__lteval_a.exr", "stale.exr", "notes.txt",
	)

	require.NoError(t, l.ClearCase(s, &testcase.TestCase{Name: "a"}))
	require.NoError(t, l.ClearCase(s, &testcase.TestCase{Name: "never-prepared"}))
	assert.NoFileExists(t, filepath.Join(l.SceneDir(s), "__lteval_a.pbrt"))
	assert.FileExists(t, filepath.Join(l.SceneDir(s), "__lteval_b.pbrt"))

	require.NoError(t, l.ClearScene(s))
	entries, err := os.ReadDir(l.SceneDir(s))
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{"scene.pbrt", "settings.pbrt", "description.pbrt", "reference.exr", "notes.txt"}, left)
}

func TestLayoutCollectResult(t *testing.T) {
	l := NewLayout("mitsuba_0_5", ".xml")
	s := newScene(t, "mitsuba_0_5", "__lteval_ok.exr")
	out := t.TempDir()

	require.NoError(t, l.CollectResult(s, &testcase.TestCase{Name: "ok"}, out))
	assert.FileExists(t, filepath.Join(out, "ok.exr"))
	assert.NoFileExists(t, l.ResultPath(s, &testcase.TestCase{Name: "ok"}))

	err := l.CollectResult(s, &testcase.TestCase{Name: "missing"}, out)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestLayoutClearSceneWithoutKindDir(t *testing.T) {
	l := NewLayout("pbrt_3", ".pbrt")
	s := scene.Scene{Name: "empty", Path: t.TempDir()}
	assert.NoError(t, l.ClearScene(s))
}
