package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeModule creates a module directory with the given manifest content
// and optional dex file names.
func writeModule(t *testing.T, bundleDir, name, manifest string, dexFiles ...string) {
	t.Helper()
	moduleDir := filepath.Join(bundleDir, name)
	require.NoError(t, os.MkdirAll(moduleDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(moduleDir, FileName), []byte(manifest), 0o644))

	if len(dexFiles) > 0 {
		dexDir := filepath.Join(moduleDir, DexDirName)
		require.NoError(t, os.MkdirAll(dexDir, 0o755))
		for _, f := range dexFiles {
			require.NoError(t, os.WriteFile(filepath.Join(dexDir, f), []byte{}, 0o644))
		}
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads modules in directory order", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "module {}\n", "classes.dex")
		writeModule(t, dir, "feature1", `
module {
  split_id   = "feature1"
  uses_split = ["feature2"]
}
`)
		writeModule(t, dir, "feature2", `
module {
  on_demand = true
}
`)

		modules, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)
		require.Len(t, modules, 3)

		base := modules[0]
		assert.Equal(t, "base", base.Name)
		assert.Empty(t, base.SplitID)
		assert.False(t, base.OnDemand)
		assert.Empty(t, base.UsesSplits)
		assert.Equal(t, []string{"classes.dex"}, base.DexFiles)

		feature1 := modules[1]
		assert.Equal(t, "feature1", feature1.Name)
		assert.Equal(t, "feature1", feature1.SplitID)
		assert.Equal(t, []string{"feature2"}, feature1.UsesSplits)
		assert.Empty(t, feature1.DexFiles)

		feature2 := modules[2]
		assert.Equal(t, "feature2", feature2.Name)
		assert.True(t, feature2.OnDemand)
	})

	t.Run("empty bundle directory is rejected", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, "contains no module directories")
	})

	t.Run("missing bundle directory is rejected", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "nope"))
		assert.ErrorContains(t, err, "failed to list module directories")
	})

	t.Run("missing manifest is rejected", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "base"), 0o755))
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, "failed to parse manifest of module 'base'")
	})

	t.Run("malformed HCL is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "module {\n")
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, "failed to parse manifest of module 'base'")
	})

	t.Run("manifest without module block is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "# nothing here\n")
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, `manifest has no "module" block`)
	})

	t.Run("duplicate module block is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "module {}\nmodule {}\n")
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, `Duplicate "module" block`)
	})

	t.Run("wrongly typed attribute is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", `
module {
  uses_split = "feature1"
}
`)
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, "invalid manifest for module 'base'")
	})

	t.Run("unknown attribute is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", `
module {
  instant = true
}
`)
		_, err := NewLoader().Load(ctx, dir)
		assert.ErrorContains(t, err, "invalid manifest for module 'base'")
	})
}
