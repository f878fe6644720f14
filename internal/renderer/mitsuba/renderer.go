package mitsuba

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/fsutil"
	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/renderer"
	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

// Kind identifies the renderer in configurations and names its scene
// directories.
const Kind = "mitsuba_0_5"

// Suffix is the suffix of Mitsuba scene files.
const Suffix = ".xml"

// Renderer renders scenes with Mitsuba 0.5.
type Renderer struct {
	renderer.Layout
	opts renderer.Options

	// fragments caches the native groups per test case name.
	fragments map[string][]Fragment
}

// New creates a Mitsuba renderer.
func New(opts renderer.Options) renderer.Renderer {
	return &Renderer{
		Layout:    renderer.NewLayout(Kind, Suffix),
		opts:      opts,
		fragments: make(map[string][]Fragment),
	}
}

// Module registers the Mitsuba renderer kind.
type Module struct{}

// Register adds the renderer constructor to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRenderer(Kind, New)
}

func (r *Renderer) fragmentsFor(tc *testcase.TestCase) []Fragment {
	if frags, ok := r.fragments[tc.Name]; ok {
		return frags
	}
	frags := BuildFragments(tc.Params)
	r.fragments[tc.Name] = frags
	return frags
}

// PrepareCase writes the settings template of the scene, updated with the
// test case's groups, to the scene-case file.
func (r *Renderer) PrepareCase(ctx context.Context, s scene.Scene, tc *testcase.TestCase) error {
	logger := ctxlog.FromContext(ctx)
	settings := r.TemplatePath(s, renderer.SettingsStem)

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(settings); err != nil {
		return fmt.Errorf("reading settings template %s: %w", settings, err)
	}
	if err := Materialize(doc, r.fragmentsFor(tc)); err != nil {
		var anchorErr *TemplateAnchorMissingError
		if errors.As(err, &anchorErr) {
			anchorErr.Template = settings
		}
		return err
	}

	casePath := r.CasePath(s, tc)
	if err := doc.WriteToFile(casePath); err != nil {
		return fmt.Errorf("writing scene-case %s: %w", casePath, err)
	}
	logger.Debug("Scene-case prepared.", "path", casePath)
	return nil
}

// RenderCase runs Mitsuba on the scene-case. Mitsuba writes the image next to
// the scene-case file.
func (r *Renderer) RenderCase(ctx context.Context, s scene.Scene, tc *testcase.TestCase, outputDir string) error {
	if err := fsutil.RemoveIfExists(r.ResultPath(s, tc)); err != nil {
		return fmt.Errorf("removing stale result: %w", err)
	}

	args := append(append([]string(nil), r.opts.Args...), r.CasePath(s, tc))
	if err := renderer.Run(ctx, r.opts.Executable, args, r.opts.Sink, stripBackspaces); err != nil {
		return err
	}
	return r.CollectResult(s, tc, outputDir)
}

// stripBackspaces drops the backspaces Mitsuba ends its progress lines with.
func stripBackspaces(line string) string {
	return strings.ReplaceAll(line, "\b", "")
}
