package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goflowd/flowd/pkg/events"
	"github.com/goflowd/flowd/pkg/identity"
	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
)

// Tasks returns active tasks matching the filter, in creation order.
func (e *Engine) Tasks(ctx context.Context, filter persistence.TaskFilter, pageable models.Pageable) (models.Page[*models.Task], error) {
	return e.store.Tasks().List(ctx, filter, pageable)
}

// CandidateGroups returns the groups allowed to claim the task, as resolved
// at its creation.
func (e *Engine) CandidateGroups(ctx context.Context, taskID string) ([]string, error) {
	task, err := e.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return task.CandidateGroups, nil
}

// Claim assigns a CREATED task to the acting principal. Under racing claims
// exactly one caller wins; the rest observe ErrInvalidStateTransition because
// the task is no longer CREATED when their turn in the exclusive section
// comes.
func (e *Engine) Claim(ctx context.Context, taskID string, principal identity.Principal) (*models.Task, error) {
	task, err := e.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	unlock := e.lockInstance(task.ProcessInstanceID)
	defer unlock()

	// Re-read inside the exclusive section; the first read only located the
	// owning instance.
	task, err = e.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != models.TaskStatusCreated {
		return nil, persistence.NewOperationError("Claim", taskID, persistence.ErrInvalidStateTransition)
	}

	if !groupsIntersect(principal.Groups, task.CandidateGroups) {
		return nil, persistence.NewOperationError("Claim", taskID, persistence.ErrUnauthorized)
	}

	task.Status = models.TaskStatusAssigned
	task.Assignee = principal.ID

	if err := e.store.Tasks().Update(ctx, task); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Task claimed",
		"task_id", taskID, "instance_id", task.ProcessInstanceID, "assignee", principal.ID)

	assigned := events.TaskAssigned{
		BaseEvent: e.newEvent(events.TaskAssignedEvent, task.ProcessInstanceID),
		TaskID:    taskID,
		Assignee:  principal.ID,
	}
	e.publish(ctx, task.ProcessInstanceID, assigned)

	return task.Clone(), nil
}

// Complete finishes an ASSIGNED task as its assignee. The whole cascade is
// applied before Complete returns: variables merged into the owning scope,
// successor tasks created, a child instance spawned if the template says so,
// and the instance reaped when its last open task is gone. Validation happens
// before the first mutation, so a failing Complete changes nothing.
func (e *Engine) Complete(ctx context.Context, taskID string, principal identity.Principal, variables map[string]any) (*models.Task, error) {
	task, err := e.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	unlock := e.lockInstance(task.ProcessInstanceID)
	defer unlock()

	task, err = e.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != models.TaskStatusAssigned {
		return nil, persistence.NewOperationError("Complete", taskID, persistence.ErrInvalidStateTransition)
	}

	// Completion is assignee-exclusive; group membership is not enough.
	if task.Assignee != principal.ID {
		return nil, persistence.NewOperationError("Complete", taskID, persistence.ErrInvalidStateTransition)
	}

	instance, err := e.store.Instances().GetByID(ctx, task.ProcessInstanceID)
	if err != nil {
		return nil, err
	}

	definition, err := e.registry.Get(instance.DefinitionKey)
	if err != nil {
		return nil, err
	}

	template := definition.TemplateByName(task.TemplateName)

	// Resolve everything the cascade will need before mutating, so a broken
	// successor or spawn rule fails the call with no state change.
	var successors []*models.TaskTemplate
	var childDefinition *models.ProcessDefinition

	if template != nil {
		for _, name := range template.Successors {
			successor := definition.TemplateByName(name)
			if successor == nil {
				return nil, persistence.NewOperationError("Complete", taskID, persistence.ErrDefinitionNotFound)
			}

			successors = append(successors, successor)
		}

		if template.Spawn != nil {
			childDefinition, err = e.registry.Get(template.Spawn.DefinitionKey)
			if err != nil {
				return nil, err
			}
		}
	}

	instance.MergeVariables(models.VariablesFromMap(variables))

	stop := template != nil && template.StopWhen != nil && conditionHolds(template.StopWhen, instance)

	var spawned *models.ProcessInstance

	if !stop {
		for _, successor := range successors {
			if _, err := e.materializeTask(ctx, instance, successor); err != nil {
				return nil, err
			}
		}

		if childDefinition != nil {
			spawned, err = e.spawn(ctx, instance, childDefinition, template.Spawn.Variables)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := e.store.Instances().Update(ctx, instance); err != nil {
		return nil, err
	}

	if err := e.store.Tasks().Remove(ctx, taskID); err != nil {
		return nil, err
	}

	task.Status = models.TaskStatusCompleted

	instanceCompleted, err := e.advance(ctx, instance)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Task completed",
		"task_id", taskID, "instance_id", instance.ID,
		"instance_completed", instanceCompleted, "assignee", principal.ID)

	completed := events.TaskCompleted{
		BaseEvent:         e.newEvent(events.TaskCompletedEvent, instance.ID),
		TaskID:            taskID,
		Assignee:          principal.ID,
		InstanceCompleted: instanceCompleted,
	}
	if spawned != nil {
		completed.SpawnedInstanceID = spawned.ID
	}
	e.publish(ctx, instance.ID, completed)

	return task.Clone(), nil
}

// materializeTask creates a task from a template, resolving its candidate
// groups against the instance's current scope. The resolution is final: later
// variable writes never change an existing task's candidate groups.
func (e *Engine) materializeTask(ctx context.Context, instance *models.ProcessInstance, template *models.TaskTemplate) (*models.Task, error) {
	task := &models.Task{
		ID:                uuid.NewString(),
		ProcessInstanceID: instance.ID,
		Name:              template.Name,
		Status:            models.TaskStatusCreated,
		CandidateGroups:   ResolveCandidateGroups(template, instance),
		TemplateName:      template.Name,
		CreatedAt:         time.Now().UTC(),
	}

	if err := e.store.Tasks().Create(ctx, task); err != nil {
		return nil, err
	}

	created := events.TaskCreated{
		BaseEvent:       e.newEvent(events.TaskCreatedEvent, instance.ID),
		TaskID:          task.ID,
		TaskName:        task.Name,
		CandidateGroups: task.CandidateGroups,
	}
	e.publish(ctx, instance.ID, created)

	return task, nil
}

func groupsIntersect(principalGroups, candidateGroups []string) bool {
	for _, pg := range principalGroups {
		for _, cg := range candidateGroups {
			if pg == cg {
				return true
			}
		}
	}

	return false
}

func conditionHolds(condition *models.VariableCondition, instance *models.ProcessInstance) bool {
	value, ok := instance.Variable(condition.Variable)
	if !ok {
		return false
	}

	return models.StringValue(value) == condition.Equals
}
