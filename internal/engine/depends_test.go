package engine

import (
	"reflect"
	"strings"
	"testing"
)

func TestResolveOrderEmptyGraph(t *testing.T) {
	declared := []string{"web", "db", "cache"}

	ordered, err := resolveOrder(newDepGraph(), declared)
	if err != nil {
		t.Fatalf("resolveOrder failed: %v", err)
	}
	if !reflect.DeepEqual(ordered, declared) {
		t.Errorf("Expected declaration order %v, got %v", declared, ordered)
	}
}

func TestResolveOrderDependenciesFirst(t *testing.T) {
	g := newDepGraph()
	g.addEdge("web", "db")
	g.addEdge("web", "cache")
	g.addEdge("worker", "db")

	declared := []string{"web", "db", "worker", "cache", "proxy"}

	ordered, err := resolveOrder(g, declared)
	if err != nil {
		t.Fatalf("resolveOrder failed: %v", err)
	}

	// Independent services come first, in declaration order.
	independent := ordered[:3]
	if !reflect.DeepEqual(independent, []string{"db", "cache", "proxy"}) {
		t.Errorf("Expected independent services [db cache proxy] first, got %v", independent)
	}

	// Every dependency precedes its dependents.
	position := make(map[string]int)
	for i, name := range ordered {
		position[name] = i
	}
	edges := [][2]string{{"web", "db"}, {"web", "cache"}, {"worker", "db"}}
	for _, edge := range edges {
		if position[edge[1]] >= position[edge[0]] {
			t.Errorf("Expected %s before %s, got order %v", edge[1], edge[0], ordered)
		}
	}

	if len(ordered) != len(declared) {
		t.Errorf("Expected %d services, got %d", len(declared), len(ordered))
	}
}

func TestResolveOrderChain(t *testing.T) {
	g := newDepGraph()
	g.addEdge("c", "b")
	g.addEdge("b", "a")

	ordered, err := resolveOrder(g, []string{"c", "b", "a"})
	if err != nil {
		t.Fatalf("resolveOrder failed: %v", err)
	}
	if !reflect.DeepEqual(ordered, []string{"a", "b", "c"}) {
		t.Errorf("Expected chain order [a b c], got %v", ordered)
	}
}

func TestResolveOrderCycle(t *testing.T) {
	g := newDepGraph()
	g.addEdge("a", "b")
	g.addEdge("b", "c")
	g.addEdge("c", "a")

	_, err := resolveOrder(g, []string{"a", "b", "c"})
	if err == nil {
		t.Fatal("Expected an error for a cyclic dependency graph")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("Expected cycle error, got %v", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Expected cycle error to name service %q, got %v", name, err)
		}
	}
}

func TestDepGraphDuplicateEdges(t *testing.T) {
	g := newDepGraph()
	g.addEdge("web", "db")
	g.addEdge("web", "db")

	if len(g.deps["web"]) != 1 {
		t.Errorf("Expected duplicate edge to be ignored, got %v", g.deps["web"])
	}
}
