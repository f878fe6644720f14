package paramset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/dag"
)

// Definition is a named set as declared in the configuration.
type Definition struct {
	Name string
	Set  *Set
}

// CycleError reports named sets whose base chains form a cycle, or depend
// on one.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	quoted := make([]string, 0, len(e.Names))
	for _, name := range e.Names {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	return fmt.Sprintf("parameter sets could not be resolved because of cyclic base dependency: %s", strings.Join(quoted, ", "))
}

// ResolveNamed resolves the base chains of all definitions and returns the
// resulting table. Names must be unique; check them before calling. Bases
// that name no definition are left unresolved, which leaves the owning set
// not ready.
func ResolveNamed(ctx context.Context, defs []Definition) (Table, error) {
	logger := ctxlog.FromContext(ctx)

	pending := make(map[string]*Set, len(defs))
	g := dag.New()
	for _, d := range defs {
		pending[d.Name] = d.Set
		g.AddNode(d.Name)
	}
	for _, d := range defs {
		for _, base := range d.Set.Bases() {
			if _, known := pending[base]; !known {
				logger.Debug("Base does not name a parameter set.", "set", d.Name, "base", base)
				continue
			}
			if err := g.AddEdge(base, d.Name); err != nil {
				return nil, fmt.Errorf("linking base %q of parameter set %q: %w", base, d.Name, err)
			}
		}
	}

	table := make(Table, len(defs))
	err := g.Peel(func(name string) error {
		resolved := pending[name].ResolveBase(table)
		table[name] = resolved
		if !resolved.IsReady() {
			logger.Warn("Parameter set has unresolved bases.", "set", name, "bases", resolved.Bases())
		} else {
			logger.Debug("Parameter set resolved.", "set", name)
		}
		return nil
	})

	var stuck *dag.StuckError
	if errors.As(err, &stuck) {
		return nil, &CycleError{Names: stuck.Nodes}
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}
