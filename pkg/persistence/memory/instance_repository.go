package memory

import (
	"context"
	"sync"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
)

// InstanceRepository stores process instances in memory. All records are
// deep-copied on the way in and out, so readers always observe a consistent
// snapshot and never share memory with the store.
type InstanceRepository struct {
	mu        sync.RWMutex
	instances map[string]*models.ProcessInstance
	order     []string
}

// NewInstanceRepository creates an empty instance repository.
func NewInstanceRepository() *InstanceRepository {
	return &InstanceRepository{
		instances: make(map[string]*models.ProcessInstance),
	}
}

func (r *InstanceRepository) Create(_ context.Context, instance *models.ProcessInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances[instance.ID] = instance.Clone()
	r.order = append(r.order, instance.ID)

	return nil
}

func (r *InstanceRepository) GetByID(_ context.Context, id string) (*models.ProcessInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.instances[id]
	if !ok {
		return nil, persistence.NewOperationError("GetByID", id, persistence.ErrInstanceNotFound)
	}

	return instance.Clone(), nil
}

func (r *InstanceRepository) Update(_ context.Context, instance *models.ProcessInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[instance.ID]; !ok {
		return persistence.NewOperationError("Update", instance.ID, persistence.ErrInstanceNotFound)
	}

	r.instances[instance.ID] = instance.Clone()

	return nil
}

func (r *InstanceRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[id]; !ok {
		return persistence.NewOperationError("Remove", id, persistence.ErrInstanceNotFound)
	}

	delete(r.instances, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

func (r *InstanceRepository) List(_ context.Context, filter persistence.InstanceFilter, pageable models.Pageable) (models.Page[*models.ProcessInstance], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.ProcessInstance, 0, len(r.order))

	for _, id := range r.order {
		instance := r.instances[id]

		if filter.DefinitionKey != "" && instance.DefinitionKey != filter.DefinitionKey {
			continue
		}

		if filter.ParentInstanceID != "" && instance.ParentInstanceID != filter.ParentInstanceID {
			continue
		}

		matched = append(matched, instance.Clone())
	}

	return models.Paginate(matched, pageable), nil
}
