package renderer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/lteval/internal/fsutil"
	"github.com/vk/lteval/internal/scene"
	"github.com/vk/lteval/internal/testcase"
)

const (
	// CasePrefix marks generated scene-case files.
	CasePrefix = "__lteval_"
	// ResultSuffix is the suffix of rendered images.
	ResultSuffix = ".exr"
	// ReferenceName is the stem of the reference image kept in a scene.
	ReferenceName = "reference"
)

// Template file stems every renderer scene directory provides.
const (
	SceneStem       = "scene"
	SettingsStem    = "settings"
	DescriptionStem = "description"
)

// ErrNoResult is returned when a render finished without leaving an image.
var ErrNoResult = errors.New("renderer produced no result image")

// Layout knows where a renderer kind keeps its files inside a scene. Adapters
// embed it to share naming and cleanup.
type Layout struct {
	kind   string
	suffix string
}

// NewLayout returns the layout for files with the given suffix, kept in the
// kind sub directory of each scene.
func NewLayout(kind, suffix string) Layout {
	return Layout{kind: kind, suffix: suffix}
}

func (l Layout) Kind() string { return l.kind }

func (l Layout) SceneSuffix() string { return l.suffix }

// SceneDir is the directory of the scene's files for this renderer kind.
func (l Layout) SceneDir(s scene.Scene) string {
	return s.RendererDir(l.kind)
}

// TemplatePath returns the path of one of the scene's template files.
func (l Layout) TemplatePath(s scene.Scene, stem string) string {
	return filepath.Join(l.SceneDir(s), stem+l.suffix)
}

// CasePath is the scene-case file generated for the test case.
func (l Layout) CasePath(s scene.Scene, tc *testcase.TestCase) string {
	return filepath.Join(l.SceneDir(s), CasePrefix+tc.Name+l.suffix)
}

// ResultPath is where the renderer leaves the image of the scene-case.
func (l Layout) ResultPath(s scene.Scene, tc *testcase.TestCase) string {
	return strings.TrimSuffix(l.CasePath(s, tc), l.suffix) + ResultSuffix
}

func (l Layout) SceneFilesExist(s scene.Scene) bool {
	for _, stem := range []string{SceneStem, SettingsStem, DescriptionStem} {
		if !fsutil.Exists(l.TemplatePath(s, stem)) {
			return false
		}
	}
	return true
}

func (l Layout) ClearCase(s scene.Scene, tc *testcase.TestCase) error {
	return fsutil.RemoveIfExists(l.CasePath(s, tc))
}

// ClearScene deletes every scene file other than the templates and every
// image other than the reference, including leftovers of interrupted runs.
// A scene without files for this kind is left alone.
func (l Layout) ClearScene(s scene.Scene) error {
	keep := map[string]bool{
		SceneStem + l.suffix:         true,
		SettingsStem + l.suffix:      true,
		DescriptionStem + l.suffix:   true,
		ReferenceName + ResultSuffix: true,
	}
	dir := l.SceneDir(s)
	if !fsutil.Exists(dir) {
		return nil
	}
	var errs []error
	for _, suffix := range []string{l.suffix, ResultSuffix} {
		files, err := fsutil.FindFilesBySuffix(dir, suffix)
		if err != nil {
			return fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, f := range files {
			if keep[filepath.Base(f)] {
				continue
			}
			if err := fsutil.RemoveIfExists(f); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// CollectResult moves the rendered image of the scene-case to
// <outputDir>/<test case>.exr.
func (l Layout) CollectResult(s scene.Scene, tc *testcase.TestCase, outputDir string) error {
	src := l.ResultPath(s, tc)
	if !fsutil.Exists(src) {
		return fmt.Errorf("%w: %s", ErrNoResult, src)
	}
	dst := filepath.Join(outputDir, tc.Name+ResultSuffix)
	if err := fsutil.MoveFile(src, dst); err != nil {
		return fmt.Errorf("moving result to %s: %w", dst, err)
	}
	return nil
}
