package memory

import (
	"context"
	"sync"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
)

// TaskRepository stores active tasks in memory, in creation order.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
	order []string
}

// NewTaskRepository creates an empty task repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]*models.Task),
	}
}

func (r *TaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task.Clone()
	r.order = append(r.order, task.ID)

	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, persistence.NewOperationError("GetByID", id, persistence.ErrTaskNotFound)
	}

	return task.Clone(), nil
}

func (r *TaskRepository) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return persistence.NewOperationError("Update", task.ID, persistence.ErrTaskNotFound)
	}

	r.tasks[task.ID] = task.Clone()

	return nil
}

func (r *TaskRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return persistence.NewOperationError("Remove", id, persistence.ErrTaskNotFound)
	}

	delete(r.tasks, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

func (r *TaskRepository) List(_ context.Context, filter persistence.TaskFilter, pageable models.Pageable) (models.Page[*models.Task], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.Task, 0, len(r.order))

	for _, id := range r.order {
		task := r.tasks[id]

		if filter.ProcessInstanceID != "" && task.ProcessInstanceID != filter.ProcessInstanceID {
			continue
		}

		matched = append(matched, task.Clone())
	}

	return models.Paginate(matched, pageable), nil
}

func (r *TaskRepository) OpenCount(_ context.Context, processInstanceID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0

	for _, task := range r.tasks {
		if task.ProcessInstanceID == processInstanceID {
			count++
		}
	}

	return count, nil
}
