package pbrt

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/fsutil"
	"github.com/vk/lteval/internal/paramset"
	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/renderer"
	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

// Kind identifies the renderer in configurations and names its scene
// directories.
const Kind = "pbrt_3"

// Suffix is the suffix of pbrt scene files.
const Suffix = ".pbrt"

// Renderer renders scenes with pbrt-v3.
type Renderer struct {
	renderer.Layout
	opts renderer.Options

	// statements caches the native groups per test case name.
	statements map[string][]Statement
}

// New creates a pbrt renderer.
func New(opts renderer.Options) renderer.Renderer {
	return &Renderer{
		Layout:     renderer.NewLayout(Kind, Suffix),
		opts:       opts,
		statements: make(map[string][]Statement),
	}
}

// Module registers the pbrt renderer kind.
type Module struct{}

// Register adds the renderer constructor to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRenderer(Kind, New)
}

// BuildStatements converts every group of a resolved set to its statement.
// Malformed parameters are logged and skipped.
func BuildStatements(ctx context.Context, ps *paramset.Set) []Statement {
	logger := ctxlog.FromContext(ctx)
	groups := ps.Groups()
	stmts := make([]Statement, 0, len(groups))
	for _, g := range groups {
		stmt, errs := buildStatement(g)
		for _, err := range errs {
			logger.Warn("Skipping malformed pbrt parameter.", "error", err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (r *Renderer) statementsFor(ctx context.Context, tc *testcase.TestCase) []Statement {
	if stmts, ok := r.statements[tc.Name]; ok {
		return stmts
	}
	stmts := BuildStatements(ctx, tc.Params)
	r.statements[tc.Name] = stmts
	return stmts
}

// PrepareCase writes the settings template of the scene, with the test
// case's statements spliced in, to the scene-case file.
func (r *Renderer) PrepareCase(ctx context.Context, s scene.Scene, tc *testcase.TestCase) error {
	settings := r.TemplatePath(s, renderer.SettingsStem)
	template, err := os.ReadFile(settings)
	if err != nil {
		return fmt.Errorf("reading settings template: %w", err)
	}

	content := Materialize(string(template), r.statementsFor(ctx, tc))
	casePath := r.CasePath(s, tc)
	if err := os.WriteFile(casePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing scene-case: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Scene-case prepared.", "path", casePath)
	return nil
}

// RenderCase runs pbrt on the scene-case, writing the image next to it.
func (r *Renderer) RenderCase(ctx context.Context, s scene.Scene, tc *testcase.TestCase, outputDir string) error {
	result := r.ResultPath(s, tc)
	if err := fsutil.RemoveIfExists(result); err != nil {
		return fmt.Errorf("removing stale result: %w", err)
	}

	args := append(append([]string(nil), r.opts.Args...), "--outfile", result, r.CasePath(s, tc))
	if err := renderer.Run(ctx, r.opts.Executable, args, r.opts.Sink, nil); err != nil {
		return err
	}
	return r.CollectResult(s, tc, outputDir)
}
