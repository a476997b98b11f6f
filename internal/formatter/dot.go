package formatter

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/ericzolf/doco2podans/internal/graph"
)

const dotGraphName = "services"

// ToDOT renders the service graph as a directed Graphviz graph. Node and
// edge names are quoted so service names with dashes or dots stay valid
// DOT identifiers.
func ToDOT(g *graph.Graph) (string, error) {
	dot := gographviz.NewGraph()
	if err := dot.SetName(dotGraphName); err != nil {
		return "", fmt.Errorf("failed to name DOT graph: %w", err)
	}
	if err := dot.SetDir(true); err != nil {
		return "", fmt.Errorf("failed to set DOT graph direction: %w", err)
	}

	for _, node := range g.Nodes {
		attrs := map[string]string{}
		if node.Image != "" {
			attrs["label"] = strconv.Quote(node.ID + "\n" + node.Image)
		}
		if err := dot.AddNode(dotGraphName, strconv.Quote(node.ID), attrs); err != nil {
			return "", fmt.Errorf("failed to add DOT node %q: %w", node.ID, err)
		}
	}

	for _, edge := range g.Edges {
		attrs := map[string]string{"label": strconv.Quote(edge.Relation)}
		if err := dot.AddEdge(strconv.Quote(edge.From), strconv.Quote(edge.To), true, attrs); err != nil {
			return "", fmt.Errorf("failed to add DOT edge %s -> %s: %w", edge.From, edge.To, err)
		}
	}

	return dot.String(), nil
}
