package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericzolf/doco2podans/internal/config"
	"github.com/ericzolf/doco2podans/internal/git"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize doco2podans configuration",
	Long: `Initialize doco2podans configuration and settings.

Creates a .doco2podans.yaml configuration file in the current directory with
default values and a randomly generated Neo4j password. Also creates the
neo4j-data directory for Docker volume mounting.

The configuration file will be created with the following default values:
  - convert.state: present
  - convert.kind: playbook
  - convert.secret_exists: skip_existing
  - neo4j.uri: bolt://localhost:7687
  - neo4j.user: neo4j
  - neo4j.password: (randomly generated)
  - neo4j.docker_image: neo4j:community

Example:
  doco2podans init`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.ConfigFileName + "." + config.ConfigFileType

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	cfg := config.DefaultConfig()

	password, err := generateRandomPassword(16)
	if err != nil {
		return fmt.Errorf("failed to generate random password: %w", err)
	}
	cfg.Neo4j.Password = password

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	// Create neo4j-data directory
	dataDir := "neo4j-data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create neo4j-data directory: %w", err)
	}

	fmt.Printf("✓ Created configuration file: %s\n\n", configPath)
	fmt.Println("Default configuration:")
	fmt.Printf("  convert.state: %s\n", cfg.Convert.State)
	fmt.Printf("  convert.kind: %s\n", cfg.Convert.Kind)
	fmt.Printf("  neo4j.uri: %s\n", cfg.Neo4j.URI)
	fmt.Printf("  neo4j.user: %s\n", cfg.Neo4j.User)
	fmt.Printf("  neo4j.password: %s\n", cfg.Neo4j.Password)
	fmt.Printf("  neo4j.docker_image: %s\n\n", cfg.Neo4j.DockerImage)
	fmt.Printf("✓ Created data directory: %s\n\n", dataDir)

	// Attempt to update .gitignore
	if err := git.EnsureIgnored([]string{configPath, dataDir + "/"}); err != nil {
		// If gitignore update fails, print a warning but don't fail the command
		fmt.Fprintf(os.Stderr, "Warning: failed to update .gitignore: %v\n", err)
		fmt.Printf("Please manually add '%s' and '%s/' to your .gitignore file.\n", configPath, dataDir)
	}

	return nil
}

// generateRandomPassword generates a random alphanumeric password of the specified length
func generateRandomPassword(length int) (string, error) {
	// Use only alphanumeric characters to avoid issues with special characters in Neo4j auth string
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i := range bytes {
		bytes[i] = charset[int(bytes[i])%len(charset)]
	}
	return string(bytes), nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
