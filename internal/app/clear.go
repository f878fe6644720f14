package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/scene"
)

// Clear deletes every generated file from every scene of the scenes
// directory, with every registered renderer kind. No configuration file is
// involved.
func (a *App) Clear(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	dir := a.config.ScenesDir
	if dir == "" {
		dir = config.DefaultScenesDir
	}
	scenes, err := scene.LoadFromDirectory(ctx, dir)
	if err != nil {
		return err
	}

	var errs []error
	renderers := a.registry.All()
	for _, s := range scenes {
		for _, r := range renderers {
			if err := r.ClearScene(s); err != nil {
				errs = append(errs, fmt.Errorf("clearing scene %q for %s: %w", s.Name, r.Kind(), err))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.logger.Info("Scenes cleared.", "dir", dir, "scenes", len(scenes), "kinds", len(renderers))
	return nil
}
