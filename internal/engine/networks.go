package engine

import "github.com/ericzolf/doco2podans/internal/compose"

// extractNetworkTasks emits one podman_network task per declared network.
// Options the engine does not understand are preserved under "unhandled"
// rather than silently dropped.
func (t *Translator) extractNetworkTasks(file *compose.File) []*Task {
	var tasks []*Task
	for _, network := range file.Networks {
		task := stubTask(network.Name, "network", NetworkModule, t.opts.State)
		if t.opts.State == StateAbsent {
			tasks = append(tasks, task)
			continue
		}
		same, rest := splitSameRest(network.Options, networkSame)
		for key, value := range same {
			task.Params[key] = value
		}
		if len(rest) > 0 {
			t.warnf("network %s has unsupported options", network.Name)
			task.Unhandled = rest
		}
		tasks = append(tasks, task)
	}
	return tasks
}
