package persistence

import (
	"context"

	"github.com/goflowd/flowd/pkg/models"
)

// InstanceFilter narrows an instance listing. Zero fields match everything.
type InstanceFilter struct {
	DefinitionKey    string
	ParentInstanceID string
}

// TaskFilter narrows a task listing to one owning instance.
type TaskFilter struct {
	ProcessInstanceID string
}

// InstanceRepository owns process instance records. Implementations must
// return deep copies so callers never share memory with stored state, and
// must make a single completed write visible to all subsequent reads.
type InstanceRepository interface {
	Create(ctx context.Context, instance *models.ProcessInstance) error

	// GetByID returns ErrInstanceNotFound for unknown and reaped ids alike.
	GetByID(ctx context.Context, id string) (*models.ProcessInstance, error)

	// Update replaces the stored record. ErrInstanceNotFound if absent.
	Update(ctx context.Context, instance *models.ProcessInstance) error

	// Remove reaps an instance from the retrievable set.
	Remove(ctx context.Context, id string) error

	// List returns instances matching the filter in creation order.
	List(ctx context.Context, filter InstanceFilter, pageable models.Pageable) (models.Page[*models.ProcessInstance], error)
}

// TaskRepository owns active task records (CREATED and ASSIGNED). Completed
// tasks are removed from the active set by the engine.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// GetByID returns ErrTaskNotFound for unknown and removed ids alike.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	Update(ctx context.Context, task *models.Task) error

	Remove(ctx context.Context, id string) error

	// List returns active tasks matching the filter in creation order.
	List(ctx context.Context, filter TaskFilter, pageable models.Pageable) (models.Page[*models.Task], error)

	// OpenCount counts active tasks owned by the given instance.
	OpenCount(ctx context.Context, processInstanceID string) (int, error)
}

// Persistence aggregates the repositories backing the engine.
type Persistence interface {
	Instances() InstanceRepository
	Tasks() TaskRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
