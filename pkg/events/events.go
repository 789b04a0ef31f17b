// Package events defines the lifecycle notifications the engine publishes as
// a side effect of its state transitions. Consumers are strictly observers:
// no engine behavior depends on a subscriber being present.
package events

import (
	"time"
)

type EventType string

// Topic carries all runtime lifecycle events.
const Topic = "flowd.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ProcessStartedEvent   EventType = "process.started"
	ProcessCompletedEvent EventType = "process.completed"
	VariablesUpdatedEvent EventType = "process.variables.updated"
	TaskCreatedEvent      EventType = "task.created"
	TaskAssignedEvent     EventType = "task.assigned"
	TaskCompletedEvent    EventType = "task.completed"
)

type BaseEvent struct {
	ID                string    `json:"id"`
	Type              EventType `json:"type"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessInstanceID string    `json:"process_instance_id"`
}

type ProcessStarted struct {
	BaseEvent

	DefinitionKey    string `json:"definition_key"`
	ParentInstanceID string `json:"parent_instance_id,omitempty"`
}

func (e ProcessStarted) GetType() EventType {
	return ProcessStartedEvent
}

type ProcessCompleted struct {
	BaseEvent

	DefinitionKey string `json:"definition_key"`
}

func (e ProcessCompleted) GetType() EventType {
	return ProcessCompletedEvent
}

type VariablesUpdated struct {
	BaseEvent

	Names []string `json:"names"`
}

func (e VariablesUpdated) GetType() EventType {
	return VariablesUpdatedEvent
}

type TaskCreated struct {
	BaseEvent

	TaskID          string   `json:"task_id"`
	TaskName        string   `json:"task_name"`
	CandidateGroups []string `json:"candidate_groups,omitempty"`
}

func (e TaskCreated) GetType() EventType {
	return TaskCreatedEvent
}

type TaskAssigned struct {
	BaseEvent

	TaskID   string `json:"task_id"`
	Assignee string `json:"assignee"`
}

func (e TaskAssigned) GetType() EventType {
	return TaskAssignedEvent
}

type TaskCompleted struct {
	BaseEvent

	TaskID            string `json:"task_id"`
	Assignee          string `json:"assignee"`
	SpawnedInstanceID string `json:"spawned_instance_id,omitempty"`
	InstanceCompleted bool   `json:"instance_completed"`
}

func (e TaskCompleted) GetType() EventType {
	return TaskCompletedEvent
}
