package builder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericzolf/doco2podans/internal/compose"
	"github.com/ericzolf/doco2podans/internal/graph"
)

// Build constructs the service dependency graph from a Compose file.
// Nodes are services; edges come from depends_on, volumes_from and
// links declarations, deduplicated.
func Build(file *compose.File) *graph.Graph {
	g := &graph.Graph{
		Nodes: make([]graph.Node, 0, len(file.Services)),
		Edges: make([]graph.Edge, 0),
	}

	known := make(map[string]bool, len(file.Services))
	for _, service := range file.Services {
		known[service.Name] = true
		g.Nodes = append(g.Nodes, extractNode(service))
	}

	uniqueEdges := make(map[string]bool)
	for _, service := range file.Services {
		extractEdges(service, known, uniqueEdges, g)
	}

	return g
}

func extractNode(service compose.Resource) graph.Node {
	node := graph.Node{ID: service.Name}
	if image, ok := service.Options["image"].(string); ok {
		node.Image = image
	}
	if _, ok := service.Options["build"]; ok {
		node.Build = true
	}
	return node
}

// extractEdges appends the service's outgoing relations, skipping
// references to undeclared services and duplicate edges.
func extractEdges(service compose.Resource, known map[string]bool, uniqueEdges map[string]bool, g *graph.Graph) {
	relations := []struct {
		option   string
		relation string
	}{
		{"depends_on", graph.DependsOnRelation},
		{"volumes_from", graph.UsesVolumesRelation},
		{"links", graph.LinkedToRelation},
	}

	for _, r := range relations {
		value, ok := service.Options[r.option]
		if !ok {
			continue
		}
		for _, target := range referenceNames(value) {
			if !known[target] {
				continue
			}
			edgeKey := fmt.Sprintf("%s -> %s [%s]", service.Name, target, r.relation)
			if uniqueEdges[edgeKey] {
				continue
			}
			uniqueEdges[edgeKey] = true
			g.Edges = append(g.Edges, graph.Edge{
				From:     service.Name,
				To:       target,
				Relation: r.relation,
			})
		}
	}
}

// referenceNames extracts the service names mentioned by a depends_on,
// volumes_from or links value, stripping alias or mode suffixes.
func referenceNames(value interface{}) []string {
	var names []string
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			name, _, _ := strings.Cut(fmt.Sprint(item), ":")
			names = append(names, name)
		}
	case map[string]interface{}:
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
	case string:
		name, _, _ := strings.Cut(v, ":")
		names = append(names, name)
	}
	return names
}
