package compose

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join("testdata", "docker-compose.yml")

	file, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if len(file.Services) != 2 {
		t.Errorf("Expected 2 services, got %d", len(file.Services))
	}
	if len(file.Secrets) != 1 || file.Secrets[0].Name != "db_password" {
		t.Errorf("Expected secret db_password, got %v", file.Secrets)
	}
	if len(file.Networks) != 1 || file.Networks[0].Name != "front" {
		t.Errorf("Expected network front, got %v", file.Networks)
	}
	if len(file.Volumes) != 1 || file.Volumes[0].Name != "data" {
		t.Errorf("Expected volume data, got %v", file.Volumes)
	}

	// Entries declared without a body carry nil options.
	if file.Networks[0].Options != nil {
		t.Errorf("Expected nil options for bare network, got %v", file.Networks[0].Options)
	}

	web := file.Services[0]
	if web.Name != "web" {
		t.Errorf("Expected web declared first, got %q", web.Name)
	}
	if web.Options["image"] != "nginx" {
		t.Errorf("Expected web image nginx, got %v", web.Options["image"])
	}

	db := file.Services[1]
	env, ok := db.Options["environment"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected environment mapping, got %T", db.Options["environment"])
	}
	if env["POSTGRES_PASSWORD"] != "${DB_PASSWORD}" {
		t.Errorf("Expected raw env reference preserved, got %v", env["POSTGRES_PASSWORD"])
	}
}

func TestLoadPreservesDeclarationOrder(t *testing.T) {
	doc := `services:
  zulu:
    image: a
  alpha:
    image: b
  mike:
    image: c
`

	file, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []string{"zulu", "alpha", "mike"}
	for i, name := range expected {
		if file.Services[i].Name != name {
			t.Errorf("Expected service %d to be %q, got %q", i, name, file.Services[i].Name)
		}
	}
}

func TestLoadIgnoresUnknownTopLevelKeys(t *testing.T) {
	doc := `version: "3.8"
x-extension: ignored
services:
  web:
    image: nginx
`

	file, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(file.Services) != 1 {
		t.Errorf("Expected 1 service, got %d", len(file.Services))
	}
}

func TestLoadRejectsNonMapping(t *testing.T) {
	if _, err := Load(strings.NewReader("- a\n- b\n")); err == nil {
		t.Error("Expected an error for a sequence root")
	}
	if _, err := Load(strings.NewReader("services: [a, b]\n")); err == nil {
		t.Error("Expected an error for a sequence collection")
	}
}

func TestConfigLookup(t *testing.T) {
	file := &File{
		Configs: []Resource{{Name: "site", Options: map[string]interface{}{"file": "./site.conf"}}},
	}

	config, ok := file.Config("site")
	if !ok {
		t.Fatal("Expected config site to be found")
	}
	if config.Options["file"] != "./site.conf" {
		t.Errorf("Unexpected config options %v", config.Options)
	}

	if _, ok := file.Config("absent"); ok {
		t.Error("Expected lookup of undeclared config to fail")
	}
}

func TestHasService(t *testing.T) {
	file := &File{Services: []Resource{{Name: "web"}}}

	if !file.HasService("web") {
		t.Error("Expected web to be declared")
	}
	if file.HasService("db") {
		t.Error("Expected db to be undeclared")
	}
}
