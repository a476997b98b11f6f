package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericzolf/doco2podans/internal/config"
	"github.com/ericzolf/doco2podans/internal/docker"
)

// containerName is the name of the Neo4j container managed by start/stop.
const containerName = "doco2podans-neo4j"

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start Neo4j database in Docker",
	Long: `Start a Neo4j database container using Docker with the configuration
from the .doco2podans.yaml file. The container will use the neo4j-data
directory as a volume for data persistence.

This command will:
  - Pull the Neo4j image if not already downloaded
  - Start a Neo4j container in the background
  - Use the credentials from the configuration file
  - Mount the neo4j-data directory as a volume

Example:
  doco2podans start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Start the Neo4j container
	ctx := context.Background()
	return docker.StartContainer(ctx, docker.StartContainerOptions{
		Config: cfg,
		Name:   containerName,
	})
}

func init() {
	rootCmd.AddCommand(startCmd)
}
