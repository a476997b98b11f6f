package graph

// Relation kinds between services in a Compose file.
const (
	DependsOnRelation   = "DEPENDS_ON"
	UsesVolumesRelation = "USES_VOLUMES_OF"
	LinkedToRelation    = "LINKED_TO"
)

// Node represents one service of the Compose file.
type Node struct {
	ID    string `json:"id"`
	Image string `json:"image,omitempty"`
	Build bool   `json:"build,omitempty"`
}

// Edge represents a relation between two services.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation"`
}

// Graph represents the service dependency graph of a Compose file.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
