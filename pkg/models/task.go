package models

import "time"

// TaskStatus represents the lifecycle state of a task.
//
// The only legal transitions are CREATED -> ASSIGNED (claim) and
// ASSIGNED -> COMPLETED (complete).
type TaskStatus string

const (
	TaskStatusCreated   TaskStatus = "CREATED"
	TaskStatusAssigned  TaskStatus = "ASSIGNED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Task is a unit of human work owned by exactly one process instance.
// CandidateGroups is resolved once, at creation, from the owning instance's
// variable scope; later variable writes never change it. A completed task
// leaves the active query surface.
type Task struct {
	ID                string     `json:"id"`
	ProcessInstanceID string     `json:"process_instance_id"`
	Name              string     `json:"name"`
	Status            TaskStatus `json:"status"`
	Assignee          string     `json:"assignee,omitempty"`
	CandidateGroups   []string   `json:"candidate_groups,omitempty"`
	TemplateName      string     `json:"template_name"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Clone returns a copy safe to hand out to callers.
func (t *Task) Clone() *Task {
	clone := *t
	clone.CandidateGroups = make([]string, len(t.CandidateGroups))
	copy(clone.CandidateGroups, t.CandidateGroups)

	return &clone
}
