package validation

import (
	"context"

	"github.com/vk/bundlecheck/internal/bundle"
	"github.com/vk/bundlecheck/internal/ctxlog"
)

// Validate runs every bundle validator over the module set: the per-module
// dex file checks first, then the cross-module dependency checks. It
// returns nil only when the whole set is certified valid; otherwise the
// first diagnosed failure is returned as a *Error.
func Validate(ctx context.Context, modules []*bundle.Module) error {
	logger := ctxlog.FromContext(ctx)

	for _, m := range modules {
		if err := ValidateDexFiles(m); err != nil {
			return err
		}
	}
	logger.Debug("Dex file validation passed.", "module_count", len(modules))

	return ValidateDependencies(ctx, modules)
}
