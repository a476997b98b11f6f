package engine

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Params is the parameter mapping handed to one Ansible module.
type Params map[string]interface{}

// Task is one unit of the generated Ansible output: a task name, the
// module it invokes with its parameters, an optional register target and
// an optional mapping of options the engine could not interpret.
type Task struct {
	Name      string
	Module    string
	Params    Params
	Register  string
	Unhandled map[string]interface{}
}

// MarshalYAML renders the task as an Ansible task mapping, keeping the
// conventional key order (name first, module next).
func (t *Task) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, value interface{}) error {
		keyNode := &yaml.Node{}
		keyNode.SetString(key)
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return fmt.Errorf("failed to encode task field %q: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
		return nil
	}

	if err := add("name", t.Name); err != nil {
		return nil, err
	}
	if err := add(t.Module, t.Params); err != nil {
		return nil, err
	}
	if t.Register != "" {
		if err := add("register", t.Register); err != nil {
			return nil, err
		}
	}
	if len(t.Unhandled) > 0 {
		if err := add("unhandled", t.Unhandled); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// stubTask returns a task skeleton for one named resource: task name
// "<action> <kind> <name>" and a parameter mapping seeded with the name.
// "present" is the module default state and is left implicit.
func stubTask(name, kind, module, state string) *Task {
	task := &Task{
		Name:   fmt.Sprintf("%s %s %s", stateActions[state], kind, name),
		Module: module,
		Params: Params{"name": name},
	}
	if state != StatePresent {
		task.Params["state"] = state
	}
	return task
}
