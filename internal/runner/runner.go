package runner

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ericzolf/doco2podans/internal/builder"
	"github.com/ericzolf/doco2podans/internal/compose"
	"github.com/ericzolf/doco2podans/internal/config"
	"github.com/ericzolf/doco2podans/internal/engine"
	"github.com/ericzolf/doco2podans/internal/formatter"
	"github.com/ericzolf/doco2podans/internal/graph"
	"github.com/ericzolf/doco2podans/internal/neo4j"
	"github.com/ericzolf/doco2podans/internal/render"
)

// Run executes the main translation: compose file in, Ansible text out.
func Run(cfg *config.Config) error {
	file, err := loadCompose(cfg.ComposeFile)
	if err != nil {
		return err
	}

	translator, err := engine.New(engine.Options{
		State:          cfg.Convert.State,
		SecretExists:   cfg.Convert.SecretExists,
		DependsNetwork: cfg.Convert.DependsNetwork,
	}, os.Stderr)
	if err != nil {
		return err
	}

	tasks, err := translator.Translate(file)
	if err != nil {
		return fmt.Errorf("failed to translate compose file: %w", err)
	}

	text, err := render.Render(tasks, cfg.Convert.Kind, cfg.Convert.TemplatesDir)
	if err != nil {
		return err
	}

	return writeOutput(cfg.OutputFile, text)
}

// RunGraph builds the service dependency graph and either prints it in
// the requested format or pushes it to Neo4j.
func RunGraph(cfg *config.Config) error {
	file, err := loadCompose(cfg.ComposeFile)
	if err != nil {
		return err
	}

	g := builder.Build(file)

	if cfg.Update {
		return updateNeo4jDatabase(g, &cfg.Neo4j)
	}

	var text string
	switch cfg.Format {
	case "", "dot":
		text, err = formatter.ToDOT(g)
	case "json":
		text, err = formatter.ToJSON(g)
	case "cypher":
		text, err = formatter.ToCypher(g)
	default:
		return fmt.Errorf("unknown graph format %q", cfg.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	return writeOutput(cfg.OutputFile, text)
}

func loadCompose(path string) (*compose.File, error) {
	if path == "" || path == "-" {
		file, err := compose.Load(os.Stdin)
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return compose.LoadFile(path)
}

func writeOutput(path, text string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func updateNeo4jDatabase(g *graph.Graph, neo4jCfg *config.Neo4jConfig) error {
	if err := validateNeo4jConfig(neo4jCfg); err != nil {
		return err
	}

	log.Printf("Connecting to Neo4j at %s...", neo4jCfg.URI)
	ctx := context.Background()

	client, err := neo4j.NewClient(neo4jCfg.URI, neo4jCfg.User, neo4jCfg.Password)
	if err != nil {
		return fmt.Errorf("failed to create neo4j client: %w", err)
	}
	defer client.Close(ctx)

	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	log.Println("Updating Neo4j database...")
	if err := client.UpdateGraph(ctx, g); err != nil {
		return fmt.Errorf("failed to update neo4j graph: %w", err)
	}

	log.Println("Successfully updated Neo4j database.")
	return nil
}

func validateNeo4jConfig(cfg *config.Neo4jConfig) error {
	if cfg.URI == "" || cfg.User == "" || cfg.Password == "" {
		return fmt.Errorf("neo4j-uri, neo4j-user, and neo4j-pass are required when updating the database. Please configure them in .doco2podans.yaml or pass them as flags")
	}
	return nil
}
