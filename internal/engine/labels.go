package engine

import "strings"

// SELinux isolation markers for volume mounts.
const (
	sharedLabel    = "z"
	exclusiveLabel = "Z"
)

// labelVolumes tags every mount of a container with an SELinux label:
// shared when another service mounts this one's volumes, exclusive
// otherwise. Mounts already carrying either label are left untouched.
func labelVolumes(name string, params Params, sharedVolumes map[string]bool) {
	volumes, ok := params["volumes"].([]interface{})
	if !ok {
		return
	}

	label := exclusiveLabel
	if sharedVolumes[name] {
		label = sharedLabel
	}

	for i, volume := range volumes {
		mount, ok := volume.(string)
		if !ok {
			continue
		}
		fields := strings.Split(mount, ":")
		if len(fields) < 3 {
			volumes[i] = strings.Join(append(fields, label), ":")
			continue
		}
		options := strings.Split(fields[len(fields)-1], ",")
		if !containsLabel(options) {
			fields[len(fields)-1] = strings.Join(append(options, label), ",")
			volumes[i] = strings.Join(fields, ":")
		}
	}
}

func containsLabel(options []string) bool {
	for _, option := range options {
		if option == sharedLabel || option == exclusiveLabel {
			return true
		}
	}
	return false
}
