// Package scene locates the scene directories an evaluation runs on.
package scene

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
)

// Scene is a directory holding one sub directory per renderer kind.
type Scene struct {
	Name string
	Path string
}

// RendererDir returns the directory with the files of the scene for the
// given renderer kind.
func (s Scene) RendererDir(kind string) string {
	return filepath.Join(s.Path, kind)
}

// Load resolves the named scenes inside dir. Duplicate names are an error.
// Names without a directory are logged and left out.
func Load(ctx context.Context, dir string, names []string) ([]Scene, error) {
	logger := ctxlog.FromContext(ctx)
	if err := config.CheckUnique("scene", names); err != nil {
		return nil, err
	}

	scenes := make([]Scene, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			logger.Warn("Scene directory does not exist, skipping.", "scene", name, "path", path)
			continue
		}
		scenes = append(scenes, Scene{Name: name, Path: path})
	}
	logger.Debug("Scenes loaded.", "requested", len(names), "found", len(scenes))
	return scenes, nil
}

// LoadFromDirectory returns every sub directory of dir as a scene, sorted
// by name.
func LoadFromDirectory(ctx context.Context, dir string) ([]Scene, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenes directory: %w", err)
	}

	var scenes []Scene
	for _, e := range entries {
		if e.IsDir() {
			scenes = append(scenes, Scene{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
		}
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Name < scenes[j].Name })
	ctxlog.FromContext(ctx).Debug("Scenes discovered.", "dir", dir, "count", len(scenes))
	return scenes, nil
}
