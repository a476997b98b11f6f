package engine

import "regexp"

// envRefPattern matches $NAME and ${NAME} environment references.
var envRefPattern = regexp.MustCompile(`\$\{?([A-Za-z_]+)\}?`)

// rewriteTaskEnvRefs replaces environment references in every string of
// a task with the Ansible env lookup expression.
func rewriteTaskEnvRefs(task *Task) {
	task.Name = rewriteString(task.Name)
	task.Register = rewriteString(task.Register)
	if rewritten, ok := rewriteEnvRefs(map[string]interface{}(task.Params)).(map[string]interface{}); ok {
		task.Params = Params(rewritten)
	}
	if rewritten, ok := rewriteEnvRefs(task.Unhandled).(map[string]interface{}); ok {
		task.Unhandled = rewritten
	}
}

// rewriteEnvRefs recursively walks sequences, mappings and scalars,
// rewriting every string. Non-string scalars pass through unchanged.
func rewriteEnvRefs(value interface{}) interface{} {
	switch v := value.(type) {
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = rewriteEnvRefs(item)
		}
		return result
	case map[string]interface{}:
		if v == nil {
			return v
		}
		result := make(map[string]interface{}, len(v))
		for key, item := range v {
			result[key] = rewriteEnvRefs(item)
		}
		return result
	case string:
		return rewriteString(v)
	default:
		return value
	}
}

func rewriteString(s string) string {
	return envRefPattern.ReplaceAllString(s, "{{ lookup('env', '${1}') }}")
}
