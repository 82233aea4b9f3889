package bundle

// BaseModuleName is the name of the mandatory base module. Every other
// module implicitly depends on it, and it is always installed at initial
// install time.
const BaseModuleName = "base"

// Module is a single module of an app bundle, as declared by its manifest.
// The zero value of every field is a valid declaration: no split ID, no
// dependencies, installed at initial install time.
type Module struct {
	// Name is the module's unique identifier, taken from its top-level
	// directory name in the bundle.
	Name string

	// SplitID is the split identifier declared in the manifest, or empty
	// when the manifest declares none. The base module never declares one.
	SplitID string

	// OnDemand marks the module as installed on demand rather than at
	// initial install time.
	OnDemand bool

	// UsesSplits lists the modules this module declares a dependency on,
	// in manifest declaration order.
	UsesSplits []string

	// DexFiles holds the base names of the module's dex containers, in
	// discovery order.
	DexFiles []string
}

// IsBase reports whether this is the mandatory base module.
func (m *Module) IsBase() bool {
	return m.Name == BaseModuleName
}
