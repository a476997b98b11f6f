package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ericzolf/doco2podans/internal/config"
	"github.com/ericzolf/doco2podans/internal/runner"
)

var graphCmd = &cobra.Command{
	Use:   "graph [compose_file] [output_file]",
	Short: "Generate the service dependency graph of a Compose file",
	Long: `doco2podans graph builds the dependency graph of the services declared
in a Docker Compose file (depends_on, volumes_from, links) and emits it as
DOT, JSON, or Cypher, or pushes it to a Neo4j database.

Examples:
  # Render the graph as DOT for Graphviz
  doco2podans graph docker-compose.yml | dot -Tsvg > services.svg

  # Output the graph as Cypher statements
  doco2podans graph --format=cypher docker-compose.yml

  # Update a Neo4j database with the current services
  doco2podans graph --update docker-compose.yml`,
	Args: cobra.MaximumNArgs(2),
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}

	return runner.RunGraph(cfg)
}

func init() {
	rootCmd.AddCommand(graphCmd)
	registerGraphFlags(graphCmd)
}

func registerGraphFlags(cmd *cobra.Command) {
	// Output format flags
	cmd.Flags().String("format", "dot", "Output format for the graph (dot, json, cypher)")

	// Neo4j integration flags
	cmd.Flags().Bool("update", false, "Update a Neo4j database with the graph")
	cmd.Flags().String("neo4j-uri", "bolt://localhost:7687", "URI for the Neo4j database")
	cmd.Flags().String("neo4j-user", "neo4j", "Username for the Neo4j database")
	cmd.Flags().String("neo4j-pass", "", "Password for the Neo4j database")
}
