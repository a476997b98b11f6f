package cmd

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/ericzolf/doco2podans/internal/compose"
	"github.com/ericzolf/doco2podans/internal/config"
	"github.com/ericzolf/doco2podans/internal/engine"
	"github.com/ericzolf/doco2podans/internal/neo4j"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate doco2podans inputs and connections",
	Long:  `Validate a Compose file or verify the Neo4j connection.`,
}

var checkComposeCmd = &cobra.Command{
	Use:   "compose [compose_file]",
	Short: "Validate a Compose file's internal references",
	Long: `Run the translation checks against a Compose file without emitting
output: every config and service mentioned by depends_on, volumes_from, links
or configs must be declared, and the dependency graph must be cycle free.

Example:
  doco2podans check compose docker-compose.yml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckCompose,
}

var checkDatabaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check Neo4j database connectivity",
	Long: `Verify that doco2podans can connect to the Neo4j database using the
credentials from the configuration file (.doco2podans.yaml).

This command will:
  1. Load the configuration from .doco2podans.yaml
  2. Attempt to connect to the Neo4j database
  3. Verify connectivity
  4. Report the connection status

Example:
  doco2podans check database`,
	RunE: runCheckDatabase,
}

func runCheckCompose(cmd *cobra.Command, args []string) error {
	path := "docker-compose.yml"
	if len(args) > 0 {
		path = args[0]
	}

	file, err := compose.LoadFile(path)
	if err != nil {
		return err
	}

	translator, err := engine.New(engine.Options{State: engine.StatePresent}, io.Discard)
	if err != nil {
		return err
	}
	if _, err := translator.Translate(file); err != nil {
		return fmt.Errorf("%s is not translatable: %w", path, err)
	}

	fmt.Printf("✓ %s: %d services, %d networks, %d volumes, %d secrets, %d configs\n",
		path, len(file.Services), len(file.Networks), len(file.Volumes),
		len(file.Secrets), len(file.Configs))

	return nil
}

func runCheckDatabase(cmd *cobra.Command, args []string) error {
	// Load configuration
	log.Println("Loading configuration from .doco2podans.yaml...")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check if config file exists
	if !config.Exists() {
		fmt.Println("⚠ Warning: No configuration file found.")
		fmt.Println("  Run 'doco2podans init' to create one.")
		fmt.Println("  Using default values...")
		fmt.Println()
	}

	// Display connection info (without password)
	fmt.Println("Neo4j Connection Settings:")
	fmt.Printf("  URI:  %s\n", cfg.Neo4j.URI)
	fmt.Printf("  User: %s\n", cfg.Neo4j.User)
	fmt.Println()

	if cfg.Neo4j.Password == "" {
		return fmt.Errorf("neo4j password is not set in configuration file")
	}

	log.Printf("Connecting to Neo4j at %s...", cfg.Neo4j.URI)
	ctx := context.Background()

	client, err := neo4j.NewClient(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		return fmt.Errorf("failed to create neo4j client: %w", err)
	}
	defer client.Close(ctx)

	log.Println("Verifying connectivity...")
	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Successfully connected to Neo4j database!")
	fmt.Println("  The database is ready to use.")

	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkComposeCmd)
	checkCmd.AddCommand(checkDatabaseCmd)
}
