package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ericzolf/doco2podans/internal/graph"
)

// ToCypher converts a graph object to a series of idempotent Cypher
// MERGE statements, suitable for piping into cypher-shell.
func ToCypher(g *graph.Graph) (string, error) {
	var sb strings.Builder

	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("MERGE (n:Service {id: '%s'})\n", node.ID))
		sb.WriteString(fmt.Sprintf("SET n.image = '%s', n.build = %t;\n", node.Image, node.Build))
	}

	sb.WriteString("\n")

	for _, edge := range g.Edges {
		cypher := fmt.Sprintf(
			"MATCH (from:Service {id: '%s'}), (to:Service {id: '%s'})\nMERGE (from)-[:%s]->(to);\n",
			edge.From,
			edge.To,
			edge.Relation,
		)
		sb.WriteString(cypher)
	}

	return sb.String(), nil
}

// ToCypherTransaction converts a graph into a single parameterized query
// for driver execution. Parameterization prevents Cypher injection and
// lets the server cache the query plan. Edges are grouped by relation
// kind because relationship types cannot be parameterized.
func ToCypherTransaction(g *graph.Graph) (string, map[string]interface{}) {
	var query bytes.Buffer
	params := make(map[string]interface{})

	nodesData := make([]map[string]interface{}, len(g.Nodes))
	for i, node := range g.Nodes {
		nodesData[i] = map[string]interface{}{
			"id":    node.ID,
			"image": node.Image,
			"build": node.Build,
		}
	}
	params["nodes"] = nodesData

	query.WriteString("UNWIND $nodes AS node_data\n")
	query.WriteString("MERGE (n:Service {id: node_data.id})\n")
	query.WriteString("SET n.image = node_data.image, n.build = node_data.build\n")

	byRelation := make(map[string][]map[string]string)
	var relations []string
	for _, edge := range g.Edges {
		if _, ok := byRelation[edge.Relation]; !ok {
			relations = append(relations, edge.Relation)
		}
		byRelation[edge.Relation] = append(byRelation[edge.Relation], map[string]string{
			"from": edge.From,
			"to":   edge.To,
		})
	}

	for i, relation := range relations {
		paramName := fmt.Sprintf("edges_%d", i)
		params[paramName] = byRelation[relation]

		query.WriteString("WITH *\n")
		query.WriteString(fmt.Sprintf("UNWIND $%s AS edge_data\n", paramName))
		query.WriteString("MATCH (from:Service {id: edge_data.from})\n")
		query.WriteString("MATCH (to:Service {id: edge_data.to})\n")
		query.WriteString(fmt.Sprintf("MERGE (from)-[:%s]->(to)\n", relation))
	}

	return query.String(), params
}
