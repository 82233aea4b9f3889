package app

import (
	"context"
	"fmt"

	"github.com/vk/bundlecheck/internal/ctxlog"
	"github.com/vk/bundlecheck/internal/validation"
)

// Run executes one validation pass over the configured bundle.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	modules, err := a.loader.Load(ctx, cfg.BundlePath)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	a.logger.Debug("Bundle loaded.", "module_count", len(modules))

	if err := validation.Validate(ctx, modules); err != nil {
		return fmt.Errorf("bundle validation failed: %w", err)
	}

	a.logger.Info("Bundle validated.", "path", cfg.BundlePath, "module_count", len(modules))
	fmt.Fprintf(a.outW, "Bundle '%s' is valid (%d modules).\n", cfg.BundlePath, len(modules))

	a.logger.Debug("App.Run method finished.")
	return nil
}
