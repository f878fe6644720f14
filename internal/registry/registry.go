package registry

import (
	"sort"

	"github.com/vk/lteval/internal/renderer"
)

// Module is the interface that all renderer modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Constructor creates a renderer of one kind.
type Constructor func(opts renderer.Options) renderer.Renderer

// Registry maps renderer kinds to their constructors for a single
// application instance.
type Registry struct {
	constructors map[string]Constructor
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Kinds returns the registered renderer kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.constructors))
	for kind := range r.constructors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
