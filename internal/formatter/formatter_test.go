package formatter

import (
	"strings"
	"testing"

	"github.com/ericzolf/doco2podans/internal/graph"
)

var testGraph = &graph.Graph{
	Nodes: []graph.Node{
		{ID: "web", Image: "nginx"},
		{ID: "db", Image: "postgres:14"},
	},
	Edges: []graph.Edge{
		{From: "web", To: "db", Relation: graph.DependsOnRelation},
	},
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(testGraph)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(out, `"id": "web"`) {
		t.Error("JSON output missing web node")
	}
	if !strings.Contains(out, `"relation": "DEPENDS_ON"`) {
		t.Error("JSON output missing DEPENDS_ON relation")
	}
}

func TestToDOT(t *testing.T) {
	out, err := ToDOT(testGraph)
	if err != nil {
		t.Fatalf("ToDOT failed: %v", err)
	}
	if !strings.Contains(out, "digraph services") {
		t.Error("DOT output missing directed graph header")
	}
	if !strings.Contains(out, `"web"`) || !strings.Contains(out, `"db"`) {
		t.Error("DOT output missing service nodes")
	}
	if !strings.Contains(out, "->") {
		t.Error("DOT output missing edge")
	}
}

func TestToCypher(t *testing.T) {
	out, err := ToCypher(testGraph)
	if err != nil {
		t.Fatalf("ToCypher failed: %v", err)
	}
	if !strings.Contains(out, "MERGE (n:Service {id: 'web'})") {
		t.Error("Cypher output missing web MERGE")
	}
	if !strings.Contains(out, "-[:DEPENDS_ON]->") {
		t.Error("Cypher output missing relation MERGE")
	}
}

func TestToCypherTransaction(t *testing.T) {
	query, params := ToCypherTransaction(testGraph)

	if !strings.Contains(query, "UNWIND $nodes AS node_data") {
		t.Error("Transactional cypher query missing 'UNWIND $nodes'")
	}
	if !strings.Contains(query, "UNWIND $edges_0 AS edge_data") {
		t.Error("Transactional cypher query missing 'UNWIND $edges_0'")
	}
	if !strings.Contains(query, "MERGE (from)-[:DEPENDS_ON]->(to)") {
		t.Error("Transactional cypher query missing relation MERGE")
	}

	if _, ok := params["nodes"]; !ok {
		t.Error("Parameters map missing 'nodes' key")
	}
	nodes, _ := params["nodes"].([]map[string]interface{})
	if len(nodes) != 2 {
		t.Errorf("Expected 2 nodes in params, got %d", len(nodes))
	}

	edges, _ := params["edges_0"].([]map[string]string)
	if len(edges) != 1 {
		t.Errorf("Expected 1 edge in params, got %d", len(edges))
	}
}
