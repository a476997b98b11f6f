package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"github.com/ericzolf/doco2podans/internal/config"
)

const (
	browserPort = "7474/tcp"
	boltPort    = "7687/tcp"

	dataDir = "neo4j-data"
)

// StartContainerOptions configures StartContainer.
type StartContainerOptions struct {
	Config *config.Config
	// Name of the container to create.
	Name string
}

// StartContainer pulls the configured Neo4j image and runs it with the
// bolt and browser ports published and the neo4j-data directory mounted
// for persistence.
func StartContainer(ctx context.Context, opts StartContainerOptions) error {
	cfg := opts.Config

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	if id, running := findContainer(ctx, cli, opts.Name); id != "" {
		if running {
			fmt.Printf("Container %s is already running\n", opts.Name)
			return nil
		}
		fmt.Printf("Starting existing container %s...\n", opts.Name)
		if err := cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
			return fmt.Errorf("failed to start container: %w", err)
		}
		fmt.Printf("✓ Container %s started\n", opts.Name)
		return nil
	}

	fmt.Printf("Pulling image %s...\n", cfg.Neo4j.DockerImage)
	reader, err := cli.ImagePull(ctx, cfg.Neo4j.DockerImage, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", cfg.Neo4j.DockerImage, err)
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to pull image %s: %w", cfg.Neo4j.DockerImage, err)
	}

	dataPath, err := filepath.Abs(dataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	containerConfig := &container.Config{
		Image: cfg.Neo4j.DockerImage,
		Env: []string{
			fmt.Sprintf("NEO4J_AUTH=%s/%s", cfg.Neo4j.User, cfg.Neo4j.Password),
		},
		ExposedPorts: nat.PortSet{
			browserPort: struct{}{},
			boltPort:    struct{}{},
		},
	}

	hostConfig := &container.HostConfig{
		PortBindings: nat.PortMap{
			browserPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "7474"}},
			boltPort:    []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "7687"}},
		},
		Binds: []string{dataPath + ":/data"},
	}

	fmt.Printf("Creating container %s...\n", opts.Name)
	created, err := cli.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, opts.Name)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	if err := cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}

	fmt.Printf("✓ Container %s started\n", opts.Name)
	fmt.Println("  Browser: http://localhost:7474")
	fmt.Printf("  Bolt:    %s\n", cfg.Neo4j.URI)

	return nil
}

// findContainer returns the id of the named container if it exists, and
// whether it is currently running.
func findContainer(ctx context.Context, cli *client.Client, name string) (string, bool) {
	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return "", false
	}
	for _, c := range containers {
		for _, n := range c.Names {
			if n == "/"+name {
				return c.ID, c.State == "running"
			}
		}
	}
	return "", false
}
