package models

import "time"

// ProcessInstanceStatus represents the lifecycle state of a process instance.
type ProcessInstanceStatus string

const (
	ProcessInstanceStatusRunning   ProcessInstanceStatus = "RUNNING"
	ProcessInstanceStatusCompleted ProcessInstanceStatus = "COMPLETED"
)

// ProcessInstance is one execution of a process definition. A completed
// instance is reaped from the store, so holders of a snapshot may keep it but
// lookups by id fail from that point on.
//
// ParentInstanceID links a spawned child back to the instance whose task
// completion created it. The link is informational: the child's lifetime is
// independent of the parent's.
type ProcessInstance struct {
	ID               string                `json:"id"`
	DefinitionKey    string                `json:"definition_key"`
	Status           ProcessInstanceStatus `json:"status"`
	ParentInstanceID string                `json:"parent_instance_id,omitempty"`
	Variables        []VariableInstance    `json:"variables,omitempty"`
	StartedAt        time.Time             `json:"started_at"`
}

// Variable returns the value of the named variable in this instance's scope.
func (p *ProcessInstance) Variable(name string) (any, bool) {
	for _, v := range p.Variables {
		if v.Name == name {
			return v.Value, true
		}
	}

	return nil, false
}

// SetVariable inserts or overwrites a variable, preserving insertion order.
func (p *ProcessInstance) SetVariable(name string, value any) {
	for i, v := range p.Variables {
		if v.Name == name {
			p.Variables[i].Value = value

			return
		}
	}

	p.Variables = append(p.Variables, VariableInstance{Name: name, Value: value})
}

// MergeVariables applies SetVariable for every entry, in the given order.
func (p *ProcessInstance) MergeVariables(vars []VariableInstance) {
	for _, v := range vars {
		p.SetVariable(v.Name, v.Value)
	}
}

// Clone returns a deep copy safe to hand out to callers.
func (p *ProcessInstance) Clone() *ProcessInstance {
	clone := *p
	clone.Variables = make([]VariableInstance, len(p.Variables))
	copy(clone.Variables, p.Variables)

	return &clone
}
