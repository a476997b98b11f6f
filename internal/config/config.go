package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = ".doco2podans"
	ConfigFileType = "yaml"
)

// Config holds the configuration for doco2podans.
type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Neo4j   Neo4jConfig   `mapstructure:"neo4j"`

	// ComposeFile and OutputFile come from positional arguments, not
	// from the config file.
	ComposeFile string `mapstructure:"-"`
	OutputFile  string `mapstructure:"-"`

	// Format and Update belong to the graph command.
	Format string `mapstructure:"-"`
	Update bool   `mapstructure:"-"`
}

// ConvertConfig holds the translation defaults.
type ConvertConfig struct {
	State          string `mapstructure:"state"`
	Kind           string `mapstructure:"kind"`
	SecretExists   string `mapstructure:"secret_exists"`
	DependsNetwork bool   `mapstructure:"depends_network"`
	TemplatesDir   string `mapstructure:"templates_dir"`
}

// Neo4jConfig holds the Neo4j connection settings for the graph commands.
type Neo4jConfig struct {
	URI         string `mapstructure:"uri"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DockerImage string `mapstructure:"docker_image"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			State:        "present",
			Kind:         "playbook",
			SecretExists: "skip_existing",
		},
		Neo4j: Neo4jConfig{
			URI:         "bolt://localhost:7687",
			User:        "neo4j",
			Password:    "",
			DockerImage: "neo4j:community",
		},
	}
}

// Load reads the configuration from the .doco2podans.yaml file.
// It searches for the config file in the current directory and $HOME.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)

	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	defaults := DefaultConfig()
	v.SetDefault("convert.state", defaults.Convert.State)
	v.SetDefault("convert.kind", defaults.Convert.Kind)
	v.SetDefault("convert.secret_exists", defaults.Convert.SecretExists)
	v.SetDefault("neo4j.uri", defaults.Neo4j.URI)
	v.SetDefault("neo4j.user", defaults.Neo4j.User)
	v.SetDefault("neo4j.password", defaults.Neo4j.Password)
	v.SetDefault("neo4j.docker_image", defaults.Neo4j.DockerImage)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; return defaults
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadAndMerge loads configuration from file and merges it with CLI flags.
// Priority: flags > config file > defaults
func LoadAndMerge(cmd *cobra.Command, args []string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("state") {
		cfg.Convert.State, _ = cmd.Flags().GetString("state")
	}
	if cmd.Flags().Changed("kind") {
		cfg.Convert.Kind, _ = cmd.Flags().GetString("kind")
	}
	if cmd.Flags().Changed("secret-exists") {
		cfg.Convert.SecretExists, _ = cmd.Flags().GetString("secret-exists")
	}
	if cmd.Flags().Changed("depends-network") {
		cfg.Convert.DependsNetwork, _ = cmd.Flags().GetBool("depends-network")
	}
	if cmd.Flags().Changed("templates") {
		cfg.Convert.TemplatesDir, _ = cmd.Flags().GetString("templates")
	}

	if cmd.Flags().Lookup("format") != nil && cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Lookup("update") != nil && cmd.Flags().Changed("update") {
		cfg.Update, _ = cmd.Flags().GetBool("update")
	}
	if cmd.Flags().Lookup("neo4j-uri") != nil {
		if cmd.Flags().Changed("neo4j-uri") {
			cfg.Neo4j.URI, _ = cmd.Flags().GetString("neo4j-uri")
		}
		if cmd.Flags().Changed("neo4j-user") {
			cfg.Neo4j.User, _ = cmd.Flags().GetString("neo4j-user")
		}
		if cmd.Flags().Changed("neo4j-pass") {
			cfg.Neo4j.Password, _ = cmd.Flags().GetString("neo4j-pass")
		}
	}

	// Positional arguments: compose file and optional output file.
	if len(args) > 0 {
		cfg.ComposeFile = args[0]
	}
	if len(args) > 1 {
		cfg.OutputFile = args[1]
	}

	return cfg, nil
}

// Save writes the configuration to a .doco2podans.yaml file.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = fmt.Sprintf("%s.%s", ConfigFileName, ConfigFileType)
	}

	v := viper.New()
	v.Set("convert.state", cfg.Convert.State)
	v.Set("convert.kind", cfg.Convert.Kind)
	v.Set("convert.secret_exists", cfg.Convert.SecretExists)
	v.Set("neo4j.uri", cfg.Neo4j.URI)
	v.Set("neo4j.user", cfg.Neo4j.User)
	v.Set("neo4j.password", cfg.Neo4j.Password)
	v.Set("neo4j.docker_image", cfg.Neo4j.DockerImage)

	// Ensure the directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds the Neo4j password, keep it owner-only.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set secure permissions on config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists in the current directory.
func Exists() bool {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(".")

	err := v.ReadInConfig()
	return err == nil
}
