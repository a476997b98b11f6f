package engine

import (
	"reflect"
	"testing"
)

func TestRewriteEnvRefs(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare", "$HOME/data", "{{ lookup('env', 'HOME') }}/data"},
		{"braced", "${DB_PASSWORD}", "{{ lookup('env', 'DB_PASSWORD') }}"},
		{"embedded", "postgres://user:${PASS}@db", "postgres://user:{{ lookup('env', 'PASS') }}@db"},
		{"multiple", "$A and $B", "{{ lookup('env', 'A') }} and {{ lookup('env', 'B') }}"},
		{"none", "plain string", "plain string"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := rewriteString(c.input); got != c.expected {
				t.Errorf("Expected %q, got %q", c.expected, got)
			}
		})
	}
}

func TestRewriteEnvRefsRecursive(t *testing.T) {
	input := map[string]interface{}{
		"env": map[string]interface{}{
			"DATA_DIR": "$HOME/data",
			"PORT":     8080,
		},
		"volumes": []interface{}{"${VOLUME_ROOT}:/data", 42, true},
	}

	result := rewriteEnvRefs(input).(map[string]interface{})

	env := result["env"].(map[string]interface{})
	if env["DATA_DIR"] != "{{ lookup('env', 'HOME') }}/data" {
		t.Errorf("Expected nested string rewritten, got %v", env["DATA_DIR"])
	}
	// Non-string scalars pass through unchanged.
	if env["PORT"] != 8080 {
		t.Errorf("Expected integer untouched, got %v", env["PORT"])
	}

	volumes := result["volumes"].([]interface{})
	expected := []interface{}{"{{ lookup('env', 'VOLUME_ROOT') }}:/data", 42, true}
	if !reflect.DeepEqual(volumes, expected) {
		t.Errorf("Expected %v, got %v", expected, volumes)
	}
}

func TestRewriteTaskEnvRefs(t *testing.T) {
	task := &Task{
		Name:   "deploy container web",
		Module: ContainerModule,
		Params: Params{"image": "$REGISTRY/nginx"},
		Unhandled: map[string]interface{}{
			"entrypoint": "${SHELL}",
		},
	}

	rewriteTaskEnvRefs(task)

	if task.Params["image"] != "{{ lookup('env', 'REGISTRY') }}/nginx" {
		t.Errorf("Expected image rewritten, got %v", task.Params["image"])
	}
	if task.Unhandled["entrypoint"] != "{{ lookup('env', 'SHELL') }}" {
		t.Errorf("Expected unhandled value rewritten, got %v", task.Unhandled["entrypoint"])
	}
	if task.Name != "deploy container web" {
		t.Errorf("Expected name unchanged, got %q", task.Name)
	}
}
