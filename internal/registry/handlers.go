package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/lteval/internal/renderer"
)

// RegisterRenderer registers the constructor of a renderer kind.
func (r *Registry) RegisterRenderer(kind string, ctor Constructor) {
	if _, exists := r.constructors[kind]; exists {
		panic(fmt.Sprintf("renderer kind '%s' already registered", kind))
	}
	slog.Debug("Registering renderer kind.", "kind", kind)
	r.constructors[kind] = ctor
}

// UnknownKindError reports a renderer declared with a kind nothing
// registered.
type UnknownKindError struct {
	Renderer string
	Kind     string
	Known    []string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("renderer %q has unknown type %q, expected one of %q", e.Renderer, e.Kind, e.Known)
}

// NewRenderer instantiates a renderer of the given kind.
func (r *Registry) NewRenderer(kind string, opts renderer.Options) (renderer.Renderer, bool) {
	ctor, ok := r.constructors[kind]
	if !ok {
		return nil, false
	}
	return ctor(opts), true
}

// All instantiates one renderer of every registered kind, sorted by kind.
// Such renderers only serve file cleanup: they have no executable.
func (r *Registry) All() []renderer.Renderer {
	kinds := r.Kinds()
	out := make([]renderer.Renderer, 0, len(kinds))
	for _, kind := range kinds {
		rn, _ := r.NewRenderer(kind, renderer.Options{})
		out = append(out, rn)
	}
	return out
}
