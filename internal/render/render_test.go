package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ericzolf/doco2podans/internal/engine"
)

func sampleTasks() []*engine.Task {
	return []*engine.Task{
		{
			Name:   "deploy network front",
			Module: engine.NetworkModule,
			Params: engine.Params{"name": "front"},
		},
		{
			Name:   "deploy container web",
			Module: engine.ContainerModule,
			Params: engine.Params{
				"name":  "web",
				"image": "docker.io/library/nginx",
			},
		},
	}
}

func TestRenderPlaybook(t *testing.T) {
	out, err := Render(sampleTasks(), KindPlaybook, "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out, "hosts: all") {
		t.Error("Playbook output missing hosts header")
	}
	if !strings.Contains(out, "tasks:") {
		t.Error("Playbook output missing tasks key")
	}
	if !strings.Contains(out, "- name: deploy network front") {
		t.Error("Playbook output missing network task")
	}
	if !strings.Contains(out, engine.ContainerModule+":") {
		t.Error("Playbook output missing container module key")
	}
	if !strings.Contains(out, "image: docker.io/library/nginx") {
		t.Error("Playbook output missing container image")
	}
}

func TestRenderTasks(t *testing.T) {
	out, err := Render(sampleTasks(), KindTasks, "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(out, "hosts:") {
		t.Error("Task list output must not contain a play header")
	}
	if !strings.Contains(out, "- name: deploy container web") {
		t.Error("Task list output missing container task")
	}
}

func TestRenderTaskKeyOrder(t *testing.T) {
	out, err := Render(sampleTasks(), KindTasks, "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The task name must precede the module mapping.
	nameIdx := strings.Index(out, "name: deploy container web")
	moduleIdx := strings.Index(out, engine.ContainerModule+":")
	if nameIdx < 0 || moduleIdx < 0 || nameIdx > moduleIdx {
		t.Errorf("Expected name key before module key:\n%s", out)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := Render(sampleTasks(), "handbook", ""); err == nil {
		t.Error("Expected an error for an unknown output kind")
	}
}

func TestRenderCustomTemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.yml.tmpl"), []byte("count: {{ len .Tasks }}\n"), 0644); err != nil {
		t.Fatalf("Failed to write custom template: %v", err)
	}

	out, err := Render(sampleTasks(), KindTasks, dir)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "count: 2") {
		t.Errorf("Expected custom template output, got %q", out)
	}
}

func TestRenderRegister(t *testing.T) {
	tasks := []*engine.Task{{
		Name:     "build image for container app",
		Module:   "ansible.builtin.command",
		Params:   engine.Params{"cmd": "podman build ./app"},
		Register: "__image_app",
	}}

	out, err := Render(tasks, KindTasks, "")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "register: __image_app") {
		t.Error("Task list output missing register key")
	}
}
