package validation

import (
	"context"

	"github.com/vk/bundlecheck/internal/bundle"
	"github.com/vk/bundlecheck/internal/ctxlog"
)

// adjacency is the dependency edge relation of a module set: module name to
// referenced module names in declaration order. names preserves insertion
// order so that traversals and diagnostics are deterministic. The relation
// is built once per validation run and read-only afterwards.
type adjacency struct {
	names []string
	edges map[string][]string
}

func (a *adjacency) contains(name string) bool {
	_, ok := a.edges[name]
	return ok
}

// ValidateDependencies checks that the declared module dependency graph is
// well-formed. The checks run in a fixed order and the first violation
// aborts the run: base module presence, split ID consistency, relation
// construction, reflexive/duplicate/dangling references, cycles, delivery
// class ordering.
func ValidateDependencies(ctx context.Context, modules []*bundle.Module) error {
	logger := ctxlog.FromContext(ctx)

	if err := checkHasBaseModule(modules); err != nil {
		return err
	}
	if err := checkSplitIDs(modules); err != nil {
		return err
	}

	deps, err := buildAdjacency(modules)
	if err != nil {
		return err
	}
	logger.Debug("Dependency relation built.", "module_count", len(deps.names))

	if err := checkNoReflexiveDependencies(deps); err != nil {
		return err
	}
	if err := checkUniqueDependencies(deps); err != nil {
		return err
	}
	if err := checkReferencedModulesExist(deps); err != nil {
		return err
	}
	if err := checkNoCycles(deps); err != nil {
		return err
	}
	if err := checkDeliveryClasses(modules, deps); err != nil {
		return err
	}

	logger.Debug("Dependency validation passed.")
	return nil
}

// checkHasBaseModule verifies the mandatory base module is present. Its
// absence is the only condition checked here; duplicate names are caught
// by the relation builder.
func checkHasBaseModule(modules []*bundle.Module) error {
	for _, m := range modules {
		if m.IsBase() {
			return nil
		}
	}
	return newError(MissingRootModule,
		"mandatory '%s' module is missing", bundle.BaseModuleName)
}

// checkSplitIDs verifies declared split IDs follow the split convention:
// the base module has the empty split ID and must not declare one, every
// other module's declared split ID must equal its name.
func checkSplitIDs(modules []*bundle.Module) error {
	for _, m := range modules {
		if m.IsBase() {
			if m.SplitID != "" {
				return newError(IdentifierMismatch,
					"the base module must not declare a split ID in its manifest, but it is set to '%s'",
					m.SplitID)
			}
			continue
		}
		if m.SplitID != "" && m.SplitID != m.Name {
			return newError(IdentifierMismatch,
				"module '%s' declares split ID '%s'; it must be either absent or equal to the module name",
				m.Name, m.SplitID)
		}
	}
	return nil
}

// buildAdjacency builds the edge relation from the manifest declarations.
// Every module implicitly depends on the base module, so each gets a
// trailing edge to it; the base module therefore carries a self-edge, which
// also guarantees every module name appears as a key in the relation.
// Listing the base module explicitly is rejected as redundant.
func buildAdjacency(modules []*bundle.Module) (*adjacency, error) {
	deps := &adjacency{edges: make(map[string][]string, len(modules))}

	for _, m := range modules {
		if deps.contains(m.Name) {
			return nil, newError(DuplicateModuleEntry,
				"module named '%s' was passed in multiple times", m.Name)
		}
		for _, dep := range m.UsesSplits {
			if dep == bundle.BaseModuleName {
				return nil, newError(ExplicitRootDependency,
					"module '%s' declares a dependency on the '%s' module, which is implicit",
					m.Name, bundle.BaseModuleName)
			}
		}

		edges := make([]string, 0, len(m.UsesSplits)+1)
		edges = append(edges, m.UsesSplits...)
		edges = append(edges, bundle.BaseModuleName)

		deps.names = append(deps.names, m.Name)
		deps.edges[m.Name] = edges
	}

	return deps, nil
}

// checkNoReflexiveDependencies rejects self-edges. The base module is the
// only one with a legitimate self-edge, added by buildAdjacency.
func checkNoReflexiveDependencies(deps *adjacency) error {
	for _, name := range deps.names {
		if name == bundle.BaseModuleName {
			continue
		}
		for _, dep := range deps.edges[name] {
			if dep == name {
				return newError(SelfDependency,
					"module '%s' depends on itself", name)
			}
		}
	}
	return nil
}

// checkUniqueDependencies rejects a module listing the same dependency more
// than once.
func checkUniqueDependencies(deps *adjacency) error {
	for _, name := range deps.names {
		seen := make(map[string]struct{}, len(deps.edges[name]))
		for _, dep := range deps.edges[name] {
			if _, ok := seen[dep]; ok {
				return newError(DuplicateDependencyDeclaration,
					"module '%s' declares a dependency on module '%s' multiple times",
					name, dep)
			}
			seen[dep] = struct{}{}
		}
	}
	return nil
}

// checkReferencedModulesExist rejects dependency declarations that name a
// module absent from the set.
func checkReferencedModulesExist(deps *adjacency) error {
	for _, name := range deps.names {
		for _, dep := range deps.edges[name] {
			if !deps.contains(dep) {
				return newError(UnknownModuleReference,
					"module '%s' is referenced as a dependency but does not exist", dep)
			}
		}
	}
	return nil
}

// checkDeliveryClasses rejects edges from install-time modules to on-demand
// modules: an install-time module must be fully usable without waiting for
// a deferred install. The base module is always install-time, so the
// implicit base edges can never trip this.
func checkDeliveryClasses(modules []*bundle.Module, deps *adjacency) error {
	byName := make(map[string]*bundle.Module, len(modules))
	for _, m := range modules {
		byName[m.Name] = m
	}

	for _, name := range deps.names {
		for _, dep := range deps.edges[name] {
			if !byName[name].OnDemand && byName[dep].OnDemand {
				return newError(InvalidDeliveryOrdering,
					"install-time module '%s' declares a dependency on on-demand module '%s'",
					name, dep)
			}
		}
	}
	return nil
}
