// Package memory provides the in-memory persistence implementation. Instance
// state lives only for the lifetime of the process, which is all the runtime
// promises: durability across restarts is not part of the contract.
package memory

import (
	"context"

	"github.com/goflowd/flowd/pkg/persistence"
)

// Persistence implements persistence.Persistence backed by process memory.
type Persistence struct {
	instanceRepo *InstanceRepository
	taskRepo     *TaskRepository
}

// NewPersistence creates an empty in-memory persistence layer.
func NewPersistence() *Persistence {
	return &Persistence{
		instanceRepo: NewInstanceRepository(),
		taskRepo:     NewTaskRepository(),
	}
}

func (p *Persistence) Instances() persistence.InstanceRepository {
	return p.instanceRepo
}

func (p *Persistence) Tasks() persistence.TaskRepository {
	return p.taskRepo
}

// HealthCheck always succeeds: there is no external resource to probe.
func (p *Persistence) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for in-memory storage.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}
