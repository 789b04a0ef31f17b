package models

import (
	"fmt"
	"slices"
	"strconv"
)

// VariableInstance is one named value in a process instance's scope. Values
// are weakly typed at the boundary (string, bool, number); identity across
// round-trips is only guaranteed for the string form.
type VariableInstance struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// StringValue renders a variable value the way this domain compares values:
// by string representation.
func StringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a trailing ".0" so "5" written as a number still reads back "5".
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// VariablesFromMap converts a payload map into ordered variable instances,
// sorted by name so the seeding order is deterministic.
func VariablesFromMap(values map[string]any) []VariableInstance {
	if len(values) == 0 {
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	slices.Sort(names)

	vars := make([]VariableInstance, 0, len(names))
	for _, name := range names {
		vars = append(vars, VariableInstance{Name: name, Value: values[name]})
	}

	return vars
}
