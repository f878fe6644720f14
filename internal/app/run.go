package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/fsutil"
	"github.com/vk/lteval/internal/registry"
	"github.com/vk/lteval/internal/renderer"
	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

// CaseFailedError stops a run when a scene-case fails and the run is not
// configured to continue.
type CaseFailedError struct {
	Scene    string
	TestCase string
	Err      error
}

func (e *CaseFailedError) Error() string {
	return fmt.Sprintf("rendering of scene %q for test case %q failed: %v", e.Scene, e.TestCase, e.Err)
}

func (e *CaseFailedError) Unwrap() error { return e.Err }

// Run executes a full evaluation: it validates the configuration, renders
// every test case on every scene into a fresh output directory and prints
// a summary of the outcome.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, cases, err := a.load(ctx)
	if err != nil {
		return err
	}

	outDir, err := createOutputDir(model, a.now())
	if err != nil {
		return err
	}
	logFile, err := os.Create(filepath.Join(outDir, logFileName))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	// From here on everything is also recorded in the output directory.
	out := io.MultiWriter(a.outW, logFile)
	logger := newLogger(a.config.LogLevel, a.config.LogFormat, out).With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("🚀 Starting evaluation.", "config", model.SourcePath, "output_dir", outDir)

	renderers, err := a.loadRenderers(ctx, model, cases, renderer.NewWriterSink(out))
	if err != nil {
		return err
	}

	scenesDir := a.config.ScenesDir
	if scenesDir == "" {
		scenesDir = model.ResolvePath(model.Settings.ScenesDir)
	}
	scenes, err := scene.Load(ctx, scenesDir, model.Scenes)
	if err != nil {
		return err
	}
	checkSceneFiles(ctx, scenes, renderers)

	results, runErr := a.renderAll(ctx, scenes, cases, renderers, filepath.Join(outDir, scenesDirName))
	writeSummary(out, results)
	if runErr != nil {
		return runErr
	}

	logger.Info("🏁 Evaluation finished.", "output_dir", outDir)
	return nil
}

// loadRenderers instantiates the configured renderers and checks every test
// case names one of them.
func (a *App) loadRenderers(ctx context.Context, model *config.Model, cases []*testcase.TestCase, sink renderer.Sink) (registry.Table, error) {
	table, err := a.registry.LoadRenderers(ctx, model, sink)
	if err != nil {
		return nil, fmt.Errorf("invalid renderers in %s:\n%w", model.SourcePath, err)
	}
	if err := table.ValidateTestCases(cases); err != nil {
		return nil, fmt.Errorf("invalid test cases in %s:\n%w", model.SourcePath, err)
	}
	return table, nil
}

// checkSceneFiles warns about every scene lacking the files of a loaded
// renderer.
func checkSceneFiles(ctx context.Context, scenes []scene.Scene, renderers registry.Table) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range scenes {
		for name, r := range renderers {
			if !r.SceneFilesExist(s) {
				logger.Warn("Scene files do not exist for renderer.", "scene", s.Name, "renderer", name, "dir", s.RendererDir(r.Kind()))
			}
		}
	}
}

// renderAll renders every test case on every scene, in order, and copies the
// scene's reference image next to each result. It stops at the first failure
// unless the run continues on failure.
func (a *App) renderAll(ctx context.Context, scenes []scene.Scene, cases []*testcase.TestCase, renderers registry.Table, outDir string) ([]Result, error) {
	var results []Result
	for _, s := range scenes {
		sceneOut := filepath.Join(outDir, s.Name)
		if err := os.MkdirAll(sceneOut, 0o755); err != nil {
			return results, fmt.Errorf("creating scene output directory: %w", err)
		}

		for _, tc := range cases {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			r := renderers[tc.Renderer]
			res := a.renderCase(ctx, r, s, tc, sceneOut)
			results = append(results, res)
			if res.Status == StatusFailed && !a.config.ContinueOnFailure {
				return results, &CaseFailedError{Scene: s.Name, TestCase: tc.Name, Err: res.Err}
			}
			if res.Status == StatusSkipped {
				continue
			}
			if err := copyReference(r, s, tc, sceneOut); err != nil {
				ctxlog.FromContext(ctx).Warn("Failed to copy reference image.", "scene", s.Name, "test_case", tc.Name, "error", err)
			}
		}
	}
	return results, nil
}

// renderCase prepares and renders one scene-case and applies the clear
// policy.
func (a *App) renderCase(ctx context.Context, r renderer.Renderer, s scene.Scene, tc *testcase.TestCase, outDir string) Result {
	ctx, logger := ctxlog.With(ctx, "scene", s.Name, "test_case", tc.Name, "renderer", tc.Renderer)
	res := Result{Scene: s.Name, TestCase: tc.Name, Renderer: tc.Renderer}

	if !r.SceneFilesExist(s) {
		logger.Warn("Skipping scene case, scene files are missing.")
		res.Status = StatusSkipped
		return res
	}

	logger.Info("Rendering scene case.", "description", tc.Description)
	start := time.Now()
	err := r.PrepareCase(ctx, s, tc)
	if err == nil {
		err = r.RenderCase(ctx, s, tc, outDir)
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		logger.Error("Rendering of scene case failed.", "error", err)
	} else {
		res.Status = StatusRendered
		logger.Info("Scene case rendered.", "duration", res.Duration)
	}

	if a.shouldClear(err == nil) {
		if cerr := r.ClearCase(s, tc); cerr != nil {
			logger.Warn("Failed to clear scene case.", "error", cerr)
		}
	}
	return res
}

func (a *App) shouldClear(succeeded bool) bool {
	switch a.config.Clear {
	case ClearAlways:
		return true
	case ClearOnSuccess:
		return succeeded
	default:
		return false
	}
}

// copyReference copies the reference image of the scene, if any, to
// <outDir>/<test case>-reference.exr.
func copyReference(r renderer.Renderer, s scene.Scene, tc *testcase.TestCase, outDir string) error {
	src := filepath.Join(s.RendererDir(r.Kind()), renderer.ReferenceName+renderer.ResultSuffix)
	if !fsutil.Exists(src) {
		return nil
	}
	dst := filepath.Join(outDir, tc.Name+referenceSuffix+renderer.ResultSuffix)
	if err := fsutil.CopyFile(src, dst); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}
