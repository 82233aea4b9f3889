package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/bundlecheck/internal/bundle"
	"github.com/vk/bundlecheck/internal/ctxlog"
	"github.com/vk/bundlecheck/internal/fsutil"
	"github.com/vk/bundlecheck/internal/hclutil"
	"github.com/vk/bundlecheck/internal/schema"
)

// FileName is the manifest file every module directory must contain.
const FileName = "module.hcl"

// DexDirName is the directory holding a module's dex containers.
const DexDirName = "dex"

var manifestFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "module"},
	},
}

var moduleBlockSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "split_id"},
		{Name: "on_demand"},
		{Name: "uses_split"},
	},
}

// Loader reads module manifests from a bundle directory tree.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a manifest loader with a fresh HCL parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load discovers the module directories of the bundle at bundlePath and
// materializes one bundle.Module per directory, in lexical directory order.
// Module names are the directory names; everything else comes from each
// directory's manifest and its dex/ contents.
func (l *Loader) Load(ctx context.Context, bundlePath string) ([]*bundle.Module, error) {
	logger := ctxlog.FromContext(ctx)

	moduleDirs, err := fsutil.ListSubdirectories(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list module directories: %w", err)
	}
	if len(moduleDirs) == 0 {
		return nil, fmt.Errorf("bundle '%s' contains no module directories", bundlePath)
	}
	logger.Debug("Module directories discovered.", "count", len(moduleDirs))

	modules := make([]*bundle.Module, 0, len(moduleDirs))
	for _, name := range moduleDirs {
		module, err := l.loadModule(ctx, bundlePath, name)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}

	logger.Debug("All module manifests loaded.", "module_count", len(modules))
	return modules, nil
}

// loadModule reads one module directory: its manifest and its dex files.
func (l *Loader) loadModule(ctx context.Context, bundlePath, name string) (*bundle.Module, error) {
	logger := ctxlog.FromContext(ctx)
	moduleDir := filepath.Join(bundlePath, name)

	manifestPath := filepath.Join(moduleDir, FileName)
	file, diags := l.parser.ParseHCLFile(manifestPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest of module '%s': %w", name, diags)
	}

	decoded, err := decodeManifest(file.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest for module '%s': %w", name, err)
	}
	logger.Debug("Manifest decoded.", "module", name, "dependency_count", len(decoded.UsesSplits))

	dexFiles, err := findDexFiles(moduleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list dex files of module '%s': %w", name, err)
	}

	return &bundle.Module{
		Name:       name,
		SplitID:    decoded.SplitID,
		OnDemand:   decoded.OnDemand,
		UsesSplits: decoded.UsesSplits,
		DexFiles:   dexFiles,
	}, nil
}

// decodeManifest extracts the single `module` block of a manifest body and
// decodes its attributes into a schema.ModuleManifest.
func decodeManifest(body hcl.Body) (*schema.ModuleManifest, error) {
	content, diags := body.Content(manifestFileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	block, diags := hclutil.FindUniqueBlock(content.Blocks, "module")
	if diags.HasErrors() {
		return nil, diags
	}
	if block == nil {
		return nil, errors.New(`manifest has no "module" block`)
	}

	attrs, diags := block.Body.Content(moduleBlockSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var manifest schema.ModuleManifest
	if attr, ok := attrs.Attributes["split_id"]; ok {
		if err := decodeAttribute(attr, &manifest.SplitID); err != nil {
			return nil, err
		}
	}
	if attr, ok := attrs.Attributes["on_demand"]; ok {
		if err := decodeAttribute(attr, &manifest.OnDemand); err != nil {
			return nil, err
		}
	}
	if attr, ok := attrs.Attributes["uses_split"]; ok {
		if err := decodeAttribute(attr, &manifest.UsesSplits); err != nil {
			return nil, err
		}
	}

	return &manifest, nil
}

// decodeAttribute evaluates a literal attribute expression and converts the
// resulting value into the pointed-to Go value via cty.
func decodeAttribute(attr *hcl.Attribute, target any) error {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}

	impliedType, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return fmt.Errorf("attribute '%s': %w", attr.Name, err)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("attribute '%s': cannot convert %s to %s: %w",
			attr.Name, val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(converted, target)
}

// findDexFiles returns the base names of the dex containers under a
// module's dex/ directory. A missing dex/ directory simply means the module
// ships no code.
func findDexFiles(moduleDir string) ([]string, error) {
	dexDir := filepath.Join(moduleDir, DexDirName)
	if _, err := os.Stat(dexDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	paths, err := fsutil.FindFilesByExtension(dexDir, ".dex")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	return names, nil
}
