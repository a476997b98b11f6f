package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/ericzolf/doco2podans/internal/engine"
)

// Kinds of Ansible files the renderer can produce.
const (
	KindPlaybook = "playbook"
	KindTasks    = "tasks"
)

//go:embed templates/*.yml.tmpl
var defaultTemplates embed.FS

var funcs = template.FuncMap{
	"to_yaml": toYAML,
	"indent":  indent,
}

// Render turns the task list into Ansible text of the requested kind.
// templatesDir overrides the embedded templates with on-disk ones of the
// same names ("<kind>.yml.tmpl").
func Render(tasks []*engine.Task, kind, templatesDir string) (string, error) {
	name := kind + ".yml.tmpl"

	var (
		tmpl *template.Template
		err  error
	)
	if templatesDir != "" {
		tmpl, err = template.New(name).Funcs(funcs).ParseFiles(filepath.Join(templatesDir, name))
	} else {
		if kind != KindPlaybook && kind != KindTasks {
			return "", fmt.Errorf("unknown output kind %q", kind)
		}
		tmpl, err = template.New(name).Funcs(funcs).ParseFS(defaultTemplates, "templates/"+name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s template: %w", kind, err)
	}

	var buf bytes.Buffer
	data := struct{ Tasks []*engine.Task }{Tasks: tasks}
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", kind, err)
	}

	return buf.String(), nil
}

// toYAML implements the to_yaml template function.
func toYAML(value interface{}) (string, error) {
	out, err := yaml.Marshal(value)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// indent prefixes every non-empty line with the given number of spaces.
func indent(spaces int, text string) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
