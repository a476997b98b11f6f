package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/ericzolf/doco2podans/internal/compose"
)

// Options control one translation run.
type Options struct {
	// State is the target lifecycle state: "present", "started" or
	// "absent". It selects the task action verb, the per-resource field
	// subset and, for "absent", reverses the emission order.
	State string
	// SecretExists is the policy flag set on secret tasks:
	// "skip_existing" or "force".
	SecretExists string
	// DependsNetwork additionally groups depends_on services into a
	// shared synthesized network.
	DependsNetwork bool
}

// Translator converts one Compose structure into an ordered Ansible task
// list. It carries no state between runs.
type Translator struct {
	opts Options
	diag io.Writer
}

// New returns a Translator. diag receives advisory warnings; nil means
// stderr.
func New(opts Options, diag io.Writer) (*Translator, error) {
	if !ValidState(opts.State) {
		return nil, fmt.Errorf("unknown lifecycle state %q", opts.State)
	}
	if opts.SecretExists == "" {
		opts.SecretExists = SecretSkipExisting
	}
	if opts.SecretExists != SecretSkipExisting && opts.SecretExists != SecretForce {
		return nil, fmt.Errorf("unknown secret policy %q", opts.SecretExists)
	}
	if diag == nil {
		diag = os.Stderr
	}
	return &Translator{opts: opts, diag: diag}, nil
}

// Translate runs every extraction pass in order and returns the final
// task list. Advisory conditions are written to the diagnostic writer;
// a dependency cycle or a dangling config/service reference aborts with
// an error and no task list.
func (t *Translator) Translate(file *compose.File) ([]*Task, error) {
	var tasks []*Task
	tasks = append(tasks, t.extractSecretTasks(file)...)
	tasks = append(tasks, t.extractNetworkTasks(file)...)
	tasks = append(tasks, t.extractVolumeTasks(file)...)

	containerTasks, err := t.extractContainerTasks(file)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, containerTasks...)

	// Teardown undoes creation in reverse order.
	if t.opts.State == StateAbsent {
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}
	}

	// Must run last: earlier passes introduce new string values.
	for _, task := range tasks {
		rewriteTaskEnvRefs(task)
	}

	return tasks, nil
}

func (t *Translator) warnf(format string, args ...interface{}) {
	fmt.Fprintf(t.diag, "WARNING: "+format+"\n", args...)
}
