package validation

import (
	"strings"
)

// checkNoCycles verifies the edge relation is acyclic apart from the base
// module's self-edge.
//
// Two bookkeeping sets keep the total work linear in modules plus edges
// instead of quadratic across start points:
//
//   - safe holds modules already proven by a completed traversal not to be
//     part of any cycle; later start points skip them entirely.
//   - visited holds the modules touched during a single start point's
//     traversal. When that traversal returns without error, every visited
//     module is folded into safe.
func checkNoCycles(deps *adjacency) error {
	safe := make(map[string]struct{}, len(deps.names))

	for _, name := range deps.names {
		visited := make(map[string]struct{})
		processing := newPathSet()

		if err := visitModule(name, deps, visited, safe, processing); err != nil {
			return err
		}

		for v := range visited {
			safe[v] = struct{}{}
		}
	}

	return nil
}

// visitModule walks one module's dependency subtree depth-first, carrying
// the current path in processing. Revisiting a module already on the path
// is a cycle; the ordered path is reported as the diagnostic.
func visitModule(name string, deps *adjacency, visited, safe map[string]struct{}, processing *pathSet) error {
	if _, ok := safe[name]; ok {
		return nil
	}
	if processing.contains(name) {
		return newError(CyclicDependency,
			"found a cyclic dependency between modules: [%s]",
			strings.Join(processing.order, ", "))
	}

	visited[name] = struct{}{}

	processing.push(name)
	for _, dep := range deps.edges[name] {
		// The base module's implicit self-edge is not a cycle.
		if dep == name {
			continue
		}
		if err := visitModule(dep, deps, visited, safe, processing); err != nil {
			return err
		}
	}
	processing.pop()

	return nil
}

// pathSet is an ordered set of module names representing the current DFS
// path. Order is kept so cycle diagnostics list the path in traversal
// order.
type pathSet struct {
	order   []string
	members map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{members: make(map[string]struct{})}
}

func (p *pathSet) contains(name string) bool {
	_, ok := p.members[name]
	return ok
}

func (p *pathSet) push(name string) {
	p.order = append(p.order, name)
	p.members[name] = struct{}{}
}

func (p *pathSet) pop() {
	last := p.order[len(p.order)-1]
	p.order = p.order[:len(p.order)-1]
	delete(p.members, last)
}
