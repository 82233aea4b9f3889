package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/bundlecheck/internal/bundle"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid bundle passes", func(t *testing.T) {
		modules := []*bundle.Module{
			{Name: "base", DexFiles: []string{"classes.dex", "classes2.dex"}},
			{Name: "feature1", SplitID: "feature1", UsesSplits: []string{"feature2"}},
			{Name: "feature2", OnDemand: false, DexFiles: []string{"classes.dex"}},
		}
		assert.NoError(t, Validate(ctx, modules))
	})

	t.Run("per-module dex checks run before cross-module checks", func(t *testing.T) {
		modules := []*bundle.Module{
			{Name: "feature", DexFiles: []string{"classes2.dex"}},
		}
		err := Validate(ctx, modules)
		requireKind(t, err, InvalidDexNaming)
	})

	t.Run("dependency failure surfaces through Validate", func(t *testing.T) {
		modules := []*bundle.Module{
			{Name: "base"},
			{Name: "a", UsesSplits: []string{"a"}},
		}
		err := Validate(ctx, modules)
		requireKind(t, err, SelfDependency)
	})
}
