package compose

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Resource is one named entry of a top-level Compose collection together
// with its option mapping. Options is nil for entries declared with no
// body (e.g. "volumes:\n  data:").
type Resource struct {
	Name    string
	Options map[string]interface{}
}

// File is a decoded Compose file. The collections preserve declaration
// order, which later drives task emission order.
type File struct {
	Secrets  []Resource
	Networks []Resource
	Volumes  []Resource
	Services []Resource
	Configs  []Resource
}

// collection keys recognized at the top level of a Compose file.
const (
	secretsKey  = "secrets"
	networksKey = "networks"
	volumesKey  = "volumes"
	servicesKey = "services"
	configsKey  = "configs"
)

// Load decodes a Compose file from a reader. Unknown top-level keys
// (version, vendor extensions) are ignored.
func Load(r io.Reader) (*File, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode compose file: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &File{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("compose file root is not a mapping")
	}

	file := &File{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]

		var dst *[]Resource
		switch key {
		case secretsKey:
			dst = &file.Secrets
		case networksKey:
			dst = &file.Networks
		case volumesKey:
			dst = &file.Volumes
		case servicesKey:
			dst = &file.Services
		case configsKey:
			dst = &file.Configs
		default:
			continue
		}

		entries, err := decodeCollection(key, value)
		if err != nil {
			return nil, err
		}
		*dst = entries
	}

	return file, nil
}

// LoadFile decodes a Compose file from disk.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open compose file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// decodeCollection turns one top-level mapping into an ordered Resource
// slice. Entry values must be mappings or empty.
func decodeCollection(key string, node *yaml.Node) ([]Resource, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level %q is not a mapping", key)
	}

	entries := make([]Resource, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		valueNode := node.Content[i+1]

		entry := Resource{Name: name}
		if !(valueNode.Kind == yaml.ScalarNode && valueNode.Tag == "!!null") {
			var options map[string]interface{}
			if err := valueNode.Decode(&options); err != nil {
				return nil, fmt.Errorf("failed to decode %s %q: %w", key, name, err)
			}
			entry.Options = options
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Config returns the named top-level config entry, or false when it is
// not declared.
func (f *File) Config(name string) (Resource, bool) {
	for _, c := range f.Configs {
		if c.Name == name {
			return c, true
		}
	}
	return Resource{}, false
}

// HasService reports whether the named service is declared.
func (f *File) HasService(name string) bool {
	for _, s := range f.Services {
		if s.Name == name {
			return true
		}
	}
	return false
}
