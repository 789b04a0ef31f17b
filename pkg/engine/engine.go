// Package engine composes the definition registry, instance store and task
// store into the process and task runtime contracts. All orchestration is
// synchronous: every public call acquires what it needs, applies its full
// cascade, and returns with all side effects visible.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goflowd/flowd/pkg/eventbus"
	"github.com/goflowd/flowd/pkg/events"
	"github.com/goflowd/flowd/pkg/identity"
	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
	"github.com/goflowd/flowd/pkg/registry"
)

// ProcessRuntime is the process-control contract.
type ProcessRuntime interface {
	Start(ctx context.Context, definitionKey string, variables map[string]any) (*models.ProcessInstance, error)
	Get(ctx context.Context, instanceID string) (*models.ProcessInstance, error)
	SetVariables(ctx context.Context, instanceID string, variables map[string]any) error
	Variables(ctx context.Context, instanceID string) ([]models.VariableInstance, error)
	List(ctx context.Context, filter persistence.InstanceFilter, pageable models.Pageable) (models.Page[*models.ProcessInstance], error)
	Definitions(pageable models.Pageable) models.Page[*models.ProcessDefinition]
}

// TaskRuntime is the task-control contract.
type TaskRuntime interface {
	Tasks(ctx context.Context, filter persistence.TaskFilter, pageable models.Pageable) (models.Page[*models.Task], error)
	Claim(ctx context.Context, taskID string, principal identity.Principal) (*models.Task, error)
	Complete(ctx context.Context, taskID string, principal identity.Principal, variables map[string]any) (*models.Task, error)
	CandidateGroups(ctx context.Context, taskID string) ([]string, error)
}

// Engine implements both runtime contracts over a persistence layer.
type Engine struct {
	logger    *slog.Logger
	registry  *registry.Registry
	store     persistence.Persistence
	publisher eventbus.EventPublisher

	// locks serializes mutations per process instance. A claim or complete
	// locks the task's owning instance, so racing claims on one task are
	// decided by whoever enters first; the loser re-reads the task and sees
	// a state that forbids its transition.
	locks sync.Map // instance id -> *sync.Mutex
}

// NewEngine creates an engine. publisher may be nil; lifecycle events are
// then dropped.
func NewEngine(logger *slog.Logger, reg *registry.Registry, store persistence.Persistence, publisher eventbus.EventPublisher) *Engine {
	return &Engine{
		logger:    logger,
		registry:  reg,
		store:     store,
		publisher: publisher,
	}
}

var _ ProcessRuntime = (*Engine)(nil)
var _ TaskRuntime = (*Engine)(nil)

// lockInstance acquires the per-instance exclusive section and returns the
// release func. Lock entries are never removed; the set of instances a single
// process sees is small and short-lived.
func (e *Engine) lockInstance(instanceID string) func() {
	muAny, _ := e.locks.LoadOrStore(instanceID, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

func (e *Engine) newEvent(eventType events.EventType, instanceID string) events.BaseEvent {
	return events.BaseEvent{
		ID:                uuid.NewString(),
		Type:              eventType,
		Timestamp:         time.Now().UTC(),
		ProcessInstanceID: instanceID,
	}
}

// publish emits a lifecycle event after the mutation committed. Failures are
// logged and swallowed: observers never affect the caller's outcome.
func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.publisher == nil {
		return
	}

	if err := e.publisher.Publish(ctx, key, event); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish lifecycle event",
			"event_type", event.GetType(), "error", err)
	}
}
