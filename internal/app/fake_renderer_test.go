package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/renderer"
	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

const fakeKind = "fake"

// fakeRenderer writes the formatted parameters as the scene-case and fails
// every test case whose name starts with "fail".
type fakeRenderer struct {
	renderer.Layout
	opts renderer.Options
}

func (f *fakeRenderer) PrepareCase(_ context.Context, s scene.Scene, tc *testcase.TestCase) error {
	var sb strings.Builder
	for _, g := range tc.Params.Groups() {
		fmt.Fprintf(&sb, "%s\n", g.Name)
	}
	return os.WriteFile(f.CasePath(s, tc), []byte(sb.String()), 0o644)
}

func (f *fakeRenderer) RenderCase(_ context.Context, s scene.Scene, tc *testcase.TestCase, outDir string) error {
	f.opts.Sink.WriteLine("rendering " + tc.Name)
	if strings.HasPrefix(tc.Name, "fail") {
		return errors.New("renderer crashed")
	}
	if err := os.WriteFile(f.ResultPath(s, tc), []byte("image"), 0o644); err != nil {
		return err
	}
	return f.CollectResult(s, tc, outDir)
}

type fakeModule struct{}

func (m *fakeModule) Register(r *registry.Registry) {
	r.RegisterRenderer(fakeKind, func(opts renderer.Options) renderer.Renderer {
		return &fakeRenderer{Layout: renderer.NewLayout(fakeKind, ".txt"), opts: opts}
	})
}
