// Package persistence provides the storage abstraction for process instances
// and tasks, plus the standardized error types every implementation uses.
package persistence

import (
	"errors"
	"fmt"
)

// Standard error types that all implementations and the engine use.
var (
	// ErrDefinitionNotFound indicates no process definition is registered
	// under the given key.
	ErrDefinitionNotFound = errors.New("process definition not found")

	// ErrDefinitionAlreadyExists indicates a definition with the same key is
	// already registered.
	ErrDefinitionAlreadyExists = errors.New("process definition already exists")

	// ErrInstanceNotFound indicates a process instance was never created or
	// has completed and been reaped. Callers cannot tell the two apart.
	ErrInstanceNotFound = errors.New("process instance not found")

	// ErrTaskNotFound indicates a task was never created or has completed.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidStateTransition indicates an operation illegal for the
	// task's current state: claiming a task that is not CREATED, completing
	// a task that is not ASSIGNED, or completing as a non-assignee.
	ErrInvalidStateTransition = errors.New("invalid task state transition")

	// ErrUnauthorized indicates the acting principal's groups do not
	// intersect the task's candidate groups.
	ErrUnauthorized = errors.New("principal not authorized for task")
)

// OperationError wraps an engine or store error with its operation context.
type OperationError struct {
	Op       string // Operation being performed (e.g. "Start", "Claim")
	EntityID string // Instance or task id if applicable
	Err      error  // Underlying error
}

func (e *OperationError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.EntityID, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates an operation error with context.
func NewOperationError(op, entityID string, err error) *OperationError {
	return &OperationError{Op: op, EntityID: entityID, Err: err}
}

// IsDefinitionNotFound checks if an error indicates an unknown definition key.
func IsDefinitionNotFound(err error) bool {
	return errors.Is(err, ErrDefinitionNotFound)
}

// IsInstanceNotFound checks if an error indicates a missing or reaped instance.
func IsInstanceNotFound(err error) bool {
	return errors.Is(err, ErrInstanceNotFound)
}

// IsTaskNotFound checks if an error indicates a missing or completed task.
func IsTaskNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}

// IsInvalidStateTransition checks if an error indicates an illegal task transition.
func IsInvalidStateTransition(err error) bool {
	return errors.Is(err, ErrInvalidStateTransition)
}

// IsUnauthorized checks if an error indicates a candidate-group authorization failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
