// Package web provides the REST surface over the process and task runtimes.
package web

// StartProcessRequest is the request body for starting a process instance.
type StartProcessRequest struct {
	DefinitionKey string         `json:"definition_key" validate:"required"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// SetVariablesRequest is the request body for merging instance variables.
type SetVariablesRequest struct {
	Variables map[string]any `json:"variables" validate:"required,min=1"`
}

// CompleteTaskRequest is the request body for completing a task. Variables
// are merged into the owning instance's scope before the cascade runs.
type CompleteTaskRequest struct {
	Variables map[string]any `json:"variables,omitempty"`
}
