// Package schema declares the structures a module manifest decodes into.
package schema

// ModuleManifest represents the content of the `module` block of a
// module.hcl manifest file.
type ModuleManifest struct {
	// SplitID is the declared split identifier. Optional; non-base modules
	// that declare it must match their module name, the base module must
	// leave it out.
	SplitID string

	// OnDemand marks the module for on-demand delivery instead of delivery
	// at initial install time.
	OnDemand bool

	// UsesSplits lists the names of the modules this module depends on, in
	// declaration order.
	UsesSplits []string
}
