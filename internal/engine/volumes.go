package engine

import "github.com/ericzolf/doco2podans/internal/compose"

// extractVolumeTasks emits one podman_volume task per declared volume.
func (t *Translator) extractVolumeTasks(file *compose.File) []*Task {
	var tasks []*Task
	for _, volume := range file.Volumes {
		task := stubTask(volume.Name, "volume", VolumeModule, t.opts.State)
		if t.opts.State == StateAbsent {
			tasks = append(tasks, task)
			continue
		}
		same, rest := splitSameRest(volume.Options, volumeSame)
		for key, value := range same {
			task.Params[key] = value
		}
		if len(rest) > 0 {
			t.warnf("volume %s has unsupported options", volume.Name)
			task.Unhandled = rest
		}
		tasks = append(tasks, task)
	}
	return tasks
}
