package renderer

import (
	"context"

	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

// Renderer is implemented by every renderer adapter.
type Renderer interface {
	// Kind is the renderer kind, which is also the name of the scene sub
	// directory holding the renderer's scene files.
	Kind() string
	// SceneSuffix is the file suffix of the renderer's scene files.
	SceneSuffix() string
	// SceneFilesExist reports whether the scene, settings and description
	// files of the scene are present.
	SceneFilesExist(s scene.Scene) bool
	// PrepareCase writes the scene-case file for the test case.
	PrepareCase(ctx context.Context, s scene.Scene, tc *testcase.TestCase) error
	// RenderCase renders a prepared scene-case file and moves the resulting
	// image to outputDir. It blocks until the renderer exits.
	RenderCase(ctx context.Context, s scene.Scene, tc *testcase.TestCase, outputDir string) error
	// ClearCase deletes the scene-case file of the test case.
	ClearCase(s scene.Scene, tc *testcase.TestCase) error
	// ClearScene deletes every generated file from the scene directory.
	ClearScene(s scene.Scene) error
}

// Options configures a renderer instance.
type Options struct {
	// Executable is the path of the renderer binary.
	Executable string
	// Args are passed to the renderer before the scene arguments.
	Args []string
	// Sink receives the renderer's output line by line.
	Sink Sink
}
