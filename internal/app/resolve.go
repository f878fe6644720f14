package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/hcl_adapter"
)

// Resolve loads and validates the configuration, then writes the fully
// resolved parameters of every test case to w as HCL. Nothing is rendered.
func (a *App) Resolve(ctx context.Context, w io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	_, cases, err := a.load(ctx)
	if err != nil {
		return err
	}
	if err := hcl_adapter.WriteResolved(w, cases); err != nil {
		return fmt.Errorf("writing resolved test cases: %w", err)
	}
	return nil
}
