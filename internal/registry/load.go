package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/shlex"
	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/fsutil"
	"github.com/vk/lteval/internal/renderer"
)

// Table maps configured renderer names to renderer instances.
type Table map[string]renderer.Renderer

// LoadRenderers instantiates every renderer the model declares. Executable
// paths are relative to the configuration file. A renderer whose executable
// is missing is left out with a warning; unknown kinds, malformed options and
// duplicate names are errors, all reported together.
func (r *Registry) LoadRenderers(ctx context.Context, model *config.Model, sink renderer.Sink) (Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Instantiating renderers...", "declared", len(model.Renderers))

	var errs []error
	names := make([]string, 0, len(model.Renderers))
	for _, def := range model.Renderers {
		names = append(names, def.Name)
	}
	if err := config.CheckUnique("renderer", names); err != nil {
		errs = append(errs, err)
	}

	table := make(Table, len(model.Renderers))
	for _, def := range model.Renderers {
		if _, known := r.constructors[def.Type]; !known {
			errs = append(errs, &UnknownKindError{Renderer: def.Name, Kind: def.Type, Known: r.Kinds()})
			continue
		}
		args, err := shlex.Split(def.Options)
		if err != nil {
			errs = append(errs, fmt.Errorf("renderer %q: invalid options %q: %w", def.Name, def.Options, err))
			continue
		}
		exe := model.ResolvePath(def.Path)
		if def.Path == "" || !fsutil.Exists(exe) {
			logger.Warn("Renderer executable not found, continuing without it.", "renderer", def.Name, "path", exe)
			continue
		}

		rn, _ := r.NewRenderer(def.Type, renderer.Options{Executable: exe, Args: args, Sink: sink})
		table[def.Name] = rn
		logger.Debug("Renderer ready.", "renderer", def.Name, "kind", def.Type, "path", exe)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	logger.Info("Renderers loaded.", "usable", len(table), "declared", len(model.Renderers))
	return table, nil
}
