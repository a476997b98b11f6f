package engine

import (
	"fmt"
	"strings"
)

// depGraph maps a service to the services it depends on. Both
// volumes_from and depends_on edges are folded in; downstream ordering
// does not distinguish them. Node order records first appearance and is
// the tie-breaker during topological sorting.
type depGraph struct {
	deps  map[string][]string
	edges map[string]bool
	order []string
	seen  map[string]bool
}

func newDepGraph() *depGraph {
	return &depGraph{
		deps:  make(map[string][]string),
		edges: make(map[string]bool),
		seen:  make(map[string]bool),
	}
}

func (g *depGraph) touch(name string) {
	if !g.seen[name] {
		g.seen[name] = true
		g.order = append(g.order, name)
	}
}

// addEdge records "from depends on to". Duplicate edges are ignored.
func (g *depGraph) addEdge(from, to string) {
	g.touch(from)
	g.touch(to)
	key := from + " -> " + to
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.deps[from] = append(g.deps[from], to)
}

func (g *depGraph) empty() bool {
	return len(g.deps) == 0
}

// resolveOrder returns the service emission order: services without
// dependency edges first, in declaration order, then the dependent
// services in topological order (a dependency always precedes its
// dependents). A cycle is fatal.
func resolveOrder(g *depGraph, declared []string) ([]string, error) {
	if g.empty() {
		return declared, nil
	}

	ordered := make([]string, 0, len(declared))
	for _, name := range declared {
		if _, ok := g.deps[name]; !ok {
			ordered = append(ordered, name)
		}
	}

	sorted, err := g.topoOrder()
	if err != nil {
		return nil, err
	}
	for _, name := range sorted {
		if _, ok := g.deps[name]; ok {
			ordered = append(ordered, name)
		}
	}

	return ordered, nil
}

// topoOrder runs Kahn's algorithm over every node the graph mentions.
// Among nodes with no unresolved dependencies the first-seen one wins.
func (g *depGraph) topoOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string)
	for _, node := range g.order {
		indegree[node] = len(g.deps[node])
		for _, dep := range g.deps[node] {
			dependents[dep] = append(dependents[dep], node)
		}
	}

	index := make(map[string]int, len(g.order))
	for i, node := range g.order {
		index[node] = i
	}

	var ready []string
	for _, node := range g.order {
		if indegree[node] == 0 {
			ready = append(ready, node)
		}
	}

	result := make([]string, 0, len(g.order))
	for len(ready) > 0 {
		// pick the first-seen ready node
		best := 0
		for i := 1; i < len(ready); i++ {
			if index[ready[i]] < index[ready[best]] {
				best = i
			}
		}
		node := ready[best]
		ready = append(ready[:best], ready[best+1:]...)

		result = append(result, node)
		for _, dependent := range dependents[node] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(result) != len(g.order) {
		var stuck []string
		for _, node := range g.order {
			if indegree[node] > 0 {
				stuck = append(stuck, node)
			}
		}
		return nil, fmt.Errorf("dependency cycle involving services: %s", strings.Join(stuck, ", "))
	}

	return result, nil
}
