package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "doco2podans [command]",
	Short: "Translate Docker Compose files to Podman Ansible tasks",
	Long: `doco2podans is a CLI tool that translates a Docker Compose file into an
Ansible playbook (or bare task list) driving the containers.podman collection,
and can export the service dependency graph to DOT, JSON, Cypher, or Neo4j.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
