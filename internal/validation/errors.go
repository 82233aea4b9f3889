package validation

import "fmt"

// Kind identifies the category of a validation failure.
type Kind int

const (
	// MissingRootModule: no module in the set is the mandatory base module.
	MissingRootModule Kind = iota
	// IdentifierMismatch: a declared split ID breaks the naming rules (the
	// base module must not declare one, any other module's must match its
	// own name).
	IdentifierMismatch
	// DuplicateModuleEntry: the same module name was supplied twice. This
	// is a caller contract violation; the manifest loader cannot produce
	// it because module names are directory names.
	DuplicateModuleEntry
	// ExplicitRootDependency: a module explicitly lists the base module,
	// whose dependency is always implicit.
	ExplicitRootDependency
	// SelfDependency: a non-base module depends on itself.
	SelfDependency
	// DuplicateDependencyDeclaration: a module lists the same dependency
	// more than once.
	DuplicateDependencyDeclaration
	// UnknownModuleReference: a dependency names a module that does not
	// exist in the set.
	UnknownModuleReference
	// CyclicDependency: a chain of dependencies returns to a module
	// already on the current path.
	CyclicDependency
	// InvalidDeliveryOrdering: an install-time module depends on an
	// on-demand module.
	InvalidDeliveryOrdering
	// InvalidDexNaming: a module's dex containers break the required
	// classes.dex, classes2.dex, ... sequence.
	InvalidDexNaming
)

// String returns the identifier of the failure kind.
func (k Kind) String() string {
	switch k {
	case MissingRootModule:
		return "MissingRootModule"
	case IdentifierMismatch:
		return "IdentifierMismatch"
	case DuplicateModuleEntry:
		return "DuplicateModuleEntry"
	case ExplicitRootDependency:
		return "ExplicitRootDependency"
	case SelfDependency:
		return "SelfDependency"
	case DuplicateDependencyDeclaration:
		return "DuplicateDependencyDeclaration"
	case UnknownModuleReference:
		return "UnknownModuleReference"
	case CyclicDependency:
		return "CyclicDependency"
	case InvalidDeliveryOrdering:
		return "InvalidDeliveryOrdering"
	case InvalidDexNaming:
		return "InvalidDexNaming"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a single diagnosed validation failure. Failures are terminal:
// the caller is expected to surface the message to the operator and stop
// the build.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// newError builds an Error of the given kind with a formatted message.
func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
