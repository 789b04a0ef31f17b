// Package models defines the core domain models for the process orchestration runtime.
package models

// ProcessDefinition is an immutable template describing a workflow: the user
// tasks it materializes, their candidate-group rules, and the variables every
// new instance starts with. Definitions are registered once at startup and
// only ever read afterwards.
type ProcessDefinition struct {
	Key              string          `json:"key"  validate:"required"`
	Name             string          `json:"name" validate:"required"`
	Tasks            []*TaskTemplate `json:"tasks"`
	DefaultVariables map[string]any  `json:"default_variables,omitempty"`
}

// TemplateByName returns the task template with the given name, or nil.
func (d *ProcessDefinition) TemplateByName(name string) *TaskTemplate {
	for _, t := range d.Tasks {
		if t.Name == name {
			return t
		}
	}

	return nil
}

// InitialTemplates returns the templates materialized when an instance starts.
func (d *ProcessDefinition) InitialTemplates() []*TaskTemplate {
	initial := make([]*TaskTemplate, 0, 1)

	for _, t := range d.Tasks {
		if t.Initial {
			initial = append(initial, t)
		}
	}

	return initial
}

// TaskTemplate describes one user task of a definition. On completion of a
// materialized task, the templates named in Successors are created next and
// Spawn (if set) starts a child instance. StopWhen suppresses both, which is
// how a looping task finally lets its instance finish.
type TaskTemplate struct {
	Name       string             `json:"name" validate:"required"`
	Group      GroupExpression    `json:"group"`
	Initial    bool               `json:"initial,omitempty"`
	Successors []string           `json:"successors,omitempty"`
	StopWhen   *VariableCondition `json:"stop_when,omitempty"`
	Spawn      *SpawnRule         `json:"spawn,omitempty"`
}

// GroupExpression resolves to the set of groups allowed to claim a task.
// Either a literal group name or the name of a variable whose value, read
// once at task creation, is the group name.
type GroupExpression struct {
	Literal      string `json:"literal,omitempty"`
	FromVariable string `json:"from_variable,omitempty"`
}

// VariableCondition holds when the named variable's string form equals the
// given value.
type VariableCondition struct {
	Variable string `json:"variable" validate:"required"`
	Equals   string `json:"equals"`
}

// SpawnRule starts a child instance of another definition when the owning
// task completes. Variables lists which parent variables are copied into the
// child's initial scope.
type SpawnRule struct {
	DefinitionKey string               `json:"definition_key" validate:"required"`
	Variables     []VariableProjection `json:"variables,omitempty"`
}

// VariableProjection copies one parent variable into a spawned child. As
// renames it in the child scope; empty As keeps the source name.
type VariableProjection struct {
	From string `json:"from" validate:"required"`
	As   string `json:"as,omitempty"`
}

// Target returns the child-scope name of the projected variable.
func (p VariableProjection) Target() string {
	if p.As != "" {
		return p.As
	}

	return p.From
}
