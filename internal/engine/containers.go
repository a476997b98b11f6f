package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericzolf/doco2podans/internal/compose"
)

// containerScan is everything the scan stage collects across all
// services. The resolve stage consumes it once all services are known.
type containerScan struct {
	tasks         map[string]*Task
	order         []string
	buildTasks    []*Task
	graph         *depGraph
	linkSets      [][]string
	sharedVolumes map[string]bool
}

// extractContainerTasks runs the two container stages: scan every
// service into a task plus graph/link/shared-volume inputs, then resolve
// those inputs into synthetic networks, volume labels and a dependency
// ordered task list.
func (t *Translator) extractContainerTasks(file *compose.File) ([]*Task, error) {
	if len(file.Services) == 0 {
		return nil, nil
	}

	scan, err := t.scanServices(file)
	if err != nil {
		return nil, err
	}

	var tasks []*Task

	// A network must be declared before any container attaches to it.
	for _, group := range mergeLinkGroups(scan.linkSets) {
		tasks = append(tasks, t.linkedNetworkTask(group, scan.tasks))
	}

	tasks = append(tasks, scan.buildTasks...)

	for _, name := range scan.order {
		labelVolumes(name, scan.tasks[name].Params, scan.sharedVolumes)
	}

	ordered, err := resolveOrder(scan.graph, scan.order)
	if err != nil {
		return nil, err
	}
	for _, name := range ordered {
		tasks = append(tasks, scan.tasks[name])
	}

	return tasks, nil
}

// scanServices builds one container task per service in declaration
// order and gathers the dependency graph, raw link sets and the set of
// services whose volumes are shared.
func (t *Translator) scanServices(file *compose.File) (*containerScan, error) {
	scan := &containerScan{
		tasks:         make(map[string]*Task),
		graph:         newDepGraph(),
		sharedVolumes: make(map[string]bool),
	}

	for _, service := range file.Services {
		name := service.Name
		task := stubTask(name, "container", ContainerModule, t.opts.State)
		same, rest := splitSameRest(service.Options, containerSame)
		for key, value := range same {
			task.Params[key] = value
		}

		// Image resolution: a build directive wins on a creation pass,
		// an explicit image is qualified against the default registry.
		if build, ok := rest["build"]; ok {
			if IsCreateState(t.opts.State) {
				buildTask := t.createBuildTask(build, name, task.Params)
				scan.buildTasks = append(scan.buildTasks, buildTask)
			}
			delete(rest, "build")
		} else if _, ok := task.Params["image"]; ok {
			improveContainerImage(task.Params)
		} else if IsCreateState(t.opts.State) {
			t.warnf("service %s: either 'build' or 'image' must be defined", name)
		}

		if volumesFrom, ok := task.Params["volumes_from"]; ok {
			for _, owner := range stringList(volumesFrom) {
				owner = serviceRef(owner)
				if !file.HasService(owner) {
					return nil, fmt.Errorf("service %s: volumes_from references unknown service %q", name, owner)
				}
				scan.sharedVolumes[owner] = true
				scan.graph.addEdge(name, owner)
			}
		}

		// Linked containers end up sharing a synthesized network.
		if links, ok := rest["links"]; ok {
			set := []string{name}
			for _, linked := range stringList(links) {
				linked = serviceRef(linked)
				if !file.HasService(linked) {
					return nil, fmt.Errorf("service %s: links references unknown service %q", name, linked)
				}
				set = append(set, linked)
			}
			scan.linkSets = append(scan.linkSets, set)
			delete(rest, "links")
		}

		if env, ok := rest["environment"]; ok {
			task.Params["env"] = normalizeKeyValues(env)
			delete(rest, "environment")
		}
		if labels, ok := rest["labels"]; ok {
			task.Params["labels"] = normalizeKeyValues(labels)
			delete(rest, "labels")
		}

		if dependsOn, ok := rest["depends_on"]; ok {
			deps := stringList(dependsOn)
			set := []string{name}
			for _, dep := range deps {
				if !file.HasService(dep) {
					return nil, fmt.Errorf("service %s: depends_on references unknown service %q", name, dep)
				}
				scan.graph.addEdge(name, dep)
				set = append(set, dep)
			}
			if t.opts.DependsNetwork {
				scan.linkSets = append(scan.linkSets, set)
			}
			delete(rest, "depends_on")
		}

		if configs, ok := rest["configs"]; ok {
			if err := addConfigMounts(name, task.Params, configs, file); err != nil {
				return nil, err
			}
			delete(rest, "configs")
		}

		if len(rest) > 0 {
			t.warnf("service %s has unsupported options", name)
			task.Unhandled = rest
		}

		scan.tasks[name] = task
		scan.order = append(scan.order, name)
	}

	return scan, nil
}

// createBuildTask synthesizes the image build task for one service and
// points the container's image at the build's registered output. The
// build context always comes from the service's own build option.
func (t *Translator) createBuildTask(build interface{}, name string, containerParams Params) *Task {
	context := "."
	switch b := build.(type) {
	case string:
		context = b
	case map[string]interface{}:
		if c, ok := b["context"].(string); ok && c != "" {
			context = c
		}
	}

	register := "__image_" + name
	containerParams["image"] = fmt.Sprintf("{{ %s.stdout_lines[-1] }}", register)

	return &Task{
		Name:     "build image for container " + name,
		Module:   "ansible.builtin.command",
		Params:   Params{"cmd": buildCmd + " " + context},
		Register: register,
	}
}

// improveContainerImage qualifies a plain image reference against the
// default registry: a bare name gains registry and library, a namespaced
// name gains the registry, anything already qualified is left alone.
func improveContainerImage(params Params) {
	image, ok := params["image"].(string)
	if !ok {
		return
	}
	switch strings.Count(image, "/") {
	case 0:
		params["image"] = defaultRegistry + "/" + defaultLibrary + "/" + image
	case 1:
		params["image"] = defaultRegistry + "/" + image
	}
}

// linkedNetworkTask creates the synthetic network task for one merged
// link group and attaches every member container to it.
func (t *Translator) linkedNetworkTask(group []string, tasks map[string]*Task) *Task {
	networkName := linkedNetworkPrefix + strings.Join(group, "-")
	task := stubTask(networkName, "network", NetworkModule, t.opts.State)
	for _, member := range group {
		if memberTask, ok := tasks[member]; ok {
			memberTask.Params["network"] = networkName
		}
	}
	return task
}

// normalizeKeyValues turns a sequence of KEY=VALUE strings into a
// mapping; a mapping passes through unchanged. A list entry with no "="
// maps to the empty string.
func normalizeKeyValues(settings interface{}) map[string]interface{} {
	switch s := settings.(type) {
	case map[string]interface{}:
		return s
	case []interface{}:
		result := make(map[string]interface{}, len(s))
		for _, item := range s {
			entry := fmt.Sprint(item)
			key, value, _ := strings.Cut(entry, "=")
			result[key] = value
		}
		return result
	default:
		return map[string]interface{}{}
	}
}

// addConfigMounts resolves each configs entry of a service into a
// source:target:z mount on the container. Configuration mounts are
// always potentially shared, hence the unconditional small z.
func addConfigMounts(service string, params Params, taskConfigs interface{}, file *compose.File) error {
	entries, ok := taskConfigs.([]interface{})
	if !ok {
		return fmt.Errorf("service %s: configs is not a sequence", service)
	}

	volumes, _ := params["volumes"].([]interface{})
	for _, entry := range entries {
		var configName, target string
		switch c := entry.(type) {
		case string:
			configName = c
			target = "/" + c
		case map[string]interface{}:
			configName, _ = c["source"].(string)
			if custom, ok := c["target"].(string); ok && custom != "" {
				target = custom
			} else {
				target = "/" + configName
			}
		default:
			return fmt.Errorf("service %s: unexpected configs entry %v", service, entry)
		}

		config, ok := file.Config(configName)
		if !ok {
			return fmt.Errorf("service %s references unknown config %q", service, configName)
		}
		source, ok := config.Options["file"].(string)
		if !ok {
			return fmt.Errorf("config %q has no file source", configName)
		}
		volumes = append(volumes, source+":"+target+":z")
	}
	params["volumes"] = volumes

	return nil
}

// stringList coerces a decoded YAML sequence or mapping into the service
// names it mentions. Mapping form (long depends_on syntax) contributes
// its keys, sorted for determinism.
func stringList(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, item := range v {
			names = append(names, fmt.Sprint(item))
		}
		return names
	case map[string]interface{}:
		names := make([]string, 0, len(v))
		for key := range v {
			names = append(names, key)
		}
		sort.Strings(names)
		return names
	case string:
		return []string{v}
	default:
		return nil
	}
}

// serviceRef strips a suffix such as an alias or access mode from a
// service reference ("db:ro" -> "db").
func serviceRef(ref string) string {
	name, _, _ := strings.Cut(ref, ":")
	return name
}
