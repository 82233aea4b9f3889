package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundlecheck/internal/validation"
)

// writeModule lays out one module directory inside a bundle fixture.
func writeModule(t *testing.T, bundleDir, name, manifest string) {
	t.Helper()
	moduleDir := filepath.Join(bundleDir, name)
	require.NoError(t, os.MkdirAll(moduleDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(moduleDir, "module.hcl"), []byte(manifest), 0o644))
}

func newTestApp(t *testing.T, bundlePath string) (*App, *Config, *bytes.Buffer) {
	t.Helper()
	cfg, err := NewConfig(Config{BundlePath: bundlePath, LogFormat: "text", LogLevel: "error"})
	require.NoError(t, err)
	var out bytes.Buffer
	return NewApp(&out, cfg), cfg, &out
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("valid bundle", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "module {}\n")
		writeModule(t, dir, "feature1", `
module {
  split_id   = "feature1"
  uses_split = ["feature2"]
}
`)
		writeModule(t, dir, "feature2", "module {}\n")

		a, cfg, out := newTestApp(t, dir)
		require.NoError(t, a.Run(ctx, cfg))
		assert.Contains(t, out.String(), "is valid (3 modules)")
	})

	t.Run("cyclic bundle fails with a kinded error", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "module {}\n")
		writeModule(t, dir, "a", `
module {
  uses_split = ["b"]
}
`)
		writeModule(t, dir, "b", `
module {
  uses_split = ["a"]
}
`)

		a, cfg, _ := newTestApp(t, dir)
		err := a.Run(ctx, cfg)
		require.Error(t, err)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, validation.CyclicDependency, verr.Kind)
	})

	t.Run("install-time to on-demand dependency fails", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "base", "module {}\n")
		writeModule(t, dir, "eager", `
module {
  uses_split = ["deferred"]
}
`)
		writeModule(t, dir, "deferred", `
module {
  on_demand = true
}
`)

		a, cfg, _ := newTestApp(t, dir)
		err := a.Run(ctx, cfg)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, validation.InvalidDeliveryOrdering, verr.Kind)
		assert.Contains(t, verr.Message, "'eager'")
		assert.Contains(t, verr.Message, "'deferred'")
	})

	t.Run("unloadable bundle fails before validation", func(t *testing.T) {
		a, cfg, _ := newTestApp(t, filepath.Join(t.TempDir(), "nope"))
		err := a.Run(ctx, cfg)
		assert.ErrorContains(t, err, "failed to load bundle")
	})
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.ErrorContains(t, err, "BundlePath is a required configuration field")

	cfg, err := NewConfig(Config{BundlePath: "/tmp/app"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/app", cfg.BundlePath)
}
