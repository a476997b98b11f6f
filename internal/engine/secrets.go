package engine

import (
	"fmt"

	"github.com/ericzolf/doco2podans/internal/compose"
)

// extractSecretTasks emits one podman_secret task per declared secret.
// On a destroy pass only the name and state are emitted: tearing down
// never needs payload data.
func (t *Translator) extractSecretTasks(file *compose.File) []*Task {
	var tasks []*Task
	for _, secret := range file.Secrets {
		task := stubTask(secret.Name, "secret", SecretModule, t.opts.State)
		if t.opts.State == StateAbsent {
			tasks = append(tasks, task)
			continue
		}
		if path, ok := secret.Options["file"]; ok {
			task.Params["data"] = fmt.Sprintf("{{ lookup('file', '%v') }}", path)
		} else {
			t.warnf("secret %s has no file source", secret.Name)
		}
		task.Params[t.opts.SecretExists] = true
		tasks = append(tasks, task)
	}
	return tasks
}
