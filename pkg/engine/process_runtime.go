package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goflowd/flowd/pkg/events"
	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
)

// Start creates a RUNNING instance of the definition registered under
// definitionKey. The instance scope is seeded with the definition's default
// variables overridden by the supplied ones, and the definition's initial
// task templates are materialized before Start returns.
func (e *Engine) Start(ctx context.Context, definitionKey string, variables map[string]any) (*models.ProcessInstance, error) {
	definition, err := e.registry.Get(definitionKey)
	if err != nil {
		return nil, err
	}

	seed := models.VariablesFromMap(definition.DefaultVariables)
	seed = append(seed, models.VariablesFromMap(variables)...)

	return e.startInstance(ctx, definition, seed, "")
}

// startInstance creates an instance and its initial tasks. Used by Start and
// by the subprocess spawner; parentID is set only for spawned children.
func (e *Engine) startInstance(ctx context.Context, definition *models.ProcessDefinition, seed []models.VariableInstance, parentID string) (*models.ProcessInstance, error) {
	instance := &models.ProcessInstance{
		ID:               uuid.NewString(),
		DefinitionKey:    definition.Key,
		Status:           models.ProcessInstanceStatusRunning,
		ParentInstanceID: parentID,
		StartedAt:        time.Now().UTC(),
	}
	instance.MergeVariables(seed)

	if err := e.store.Instances().Create(ctx, instance); err != nil {
		return nil, err
	}

	for _, template := range definition.InitialTemplates() {
		if _, err := e.materializeTask(ctx, instance, template); err != nil {
			return nil, err
		}
	}

	e.logger.InfoContext(ctx, "Started process instance",
		"instance_id", instance.ID, "definition_key", definition.Key, "parent_instance_id", parentID)

	started := events.ProcessStarted{
		BaseEvent:        e.newEvent(events.ProcessStartedEvent, instance.ID),
		DefinitionKey:    definition.Key,
		ParentInstanceID: parentID,
	}
	e.publish(ctx, instance.ID, started)

	return instance.Clone(), nil
}

// Get returns a snapshot of a RUNNING instance. A completed instance has been
// reaped, so completion and absence are indistinguishable here; "not found"
// is the signal that a workflow has fully closed.
func (e *Engine) Get(ctx context.Context, instanceID string) (*models.ProcessInstance, error) {
	return e.store.Instances().GetByID(ctx, instanceID)
}

// SetVariables merges the given values into the instance's scope.
func (e *Engine) SetVariables(ctx context.Context, instanceID string, variables map[string]any) error {
	unlock := e.lockInstance(instanceID)
	defer unlock()

	instance, err := e.store.Instances().GetByID(ctx, instanceID)
	if err != nil {
		return err
	}

	merged := models.VariablesFromMap(variables)
	instance.MergeVariables(merged)

	if err := e.store.Instances().Update(ctx, instance); err != nil {
		return err
	}

	names := make([]string, 0, len(merged))
	for _, v := range merged {
		names = append(names, v.Name)
	}

	updated := events.VariablesUpdated{
		BaseEvent: e.newEvent(events.VariablesUpdatedEvent, instanceID),
		Names:     names,
	}
	e.publish(ctx, instanceID, updated)

	return nil
}

// Variables returns the instance's scope in insertion order.
func (e *Engine) Variables(ctx context.Context, instanceID string) ([]models.VariableInstance, error) {
	instance, err := e.store.Instances().GetByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	return instance.Variables, nil
}

// List returns instances matching the filter, in creation order.
func (e *Engine) List(ctx context.Context, filter persistence.InstanceFilter, pageable models.Pageable) (models.Page[*models.ProcessInstance], error) {
	return e.store.Instances().List(ctx, filter, pageable)
}

// Definitions returns the registered process definitions.
func (e *Engine) Definitions(pageable models.Pageable) models.Page[*models.ProcessDefinition] {
	return e.registry.List(pageable)
}

// advance transitions an instance to COMPLETED and reaps it once no open
// tasks remain. Called inside the instance's exclusive section, after a task
// completion has been applied.
func (e *Engine) advance(ctx context.Context, instance *models.ProcessInstance) (bool, error) {
	open, err := e.store.Tasks().OpenCount(ctx, instance.ID)
	if err != nil {
		return false, err
	}

	if open > 0 {
		return false, nil
	}

	instance.Status = models.ProcessInstanceStatusCompleted

	if err := e.store.Instances().Remove(ctx, instance.ID); err != nil {
		return false, err
	}

	e.logger.InfoContext(ctx, "Process instance completed",
		"instance_id", instance.ID, "definition_key", instance.DefinitionKey)

	completed := events.ProcessCompleted{
		BaseEvent:     e.newEvent(events.ProcessCompletedEvent, instance.ID),
		DefinitionKey: instance.DefinitionKey,
	}
	e.publish(ctx, instance.ID, completed)

	return true, nil
}

// spawn starts a child instance of the rule's definition, copying the
// projected variables from the parent's current scope over the child's own
// defaults. The caller must have pre-resolved the child definition so that a
// bad spawn rule fails before any state changes.
func (e *Engine) spawn(ctx context.Context, parent *models.ProcessInstance, child *models.ProcessDefinition, projections []models.VariableProjection) (*models.ProcessInstance, error) {
	seed := models.VariablesFromMap(child.DefaultVariables)

	for _, projection := range projections {
		value, ok := parent.Variable(projection.From)
		if !ok {
			continue
		}

		seed = append(seed, models.VariableInstance{Name: projection.Target(), Value: value})
	}

	return e.startInstance(ctx, child, seed, parent.ID)
}
