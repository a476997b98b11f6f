package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ericzolf/doco2podans/internal/config"
	"github.com/ericzolf/doco2podans/internal/runner"
)

var convertCmd = &cobra.Command{
	Use:   "convert [compose_file] [output_file]",
	Short: "Translate a Docker Compose file into Podman Ansible tasks",
	Long: `doco2podans convert reads a Docker Compose file and emits an Ansible
playbook or task list using the containers.podman collection modules. Service
dependencies (depends_on, volumes_from) determine task order, linked services
share a synthesized network, and volume mounts gain SELinux labels.

Examples:
  # Convert a compose file to a playbook on stdout
  doco2podans convert docker-compose.yml

  # Write a bare task list
  doco2podans convert --kind=tasks docker-compose.yml tasks.yml

  # Generate the teardown playbook
  doco2podans convert --state=absent docker-compose.yml destroy.yml`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}

	return runner.Run(cfg)
}

func init() {
	rootCmd.AddCommand(convertCmd)
	registerConvertFlags(convertCmd)
}

func registerConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "playbook", "Kind of Ansible file to create (playbook, tasks)")
	cmd.Flags().String("state", "present", "Target lifecycle state (present, started, absent)")
	cmd.Flags().String("secret-exists", "skip_existing", "How to handle existing secrets (skip_existing, force)")
	cmd.Flags().Bool("depends-network", false, "Create a shared network out of depends_on relations")
	cmd.Flags().String("templates", "", "Directory with custom output templates")
}
