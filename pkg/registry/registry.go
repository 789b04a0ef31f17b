// Package registry holds the process definitions the runtime can start.
// Definitions are supplied fully formed at startup and treated as immutable.
package registry

import (
	"log/slog"
	"sync"

	"github.com/goflowd/flowd/pkg/models"
	"github.com/goflowd/flowd/pkg/persistence"
)

type Registry struct {
	logger      *slog.Logger
	mu          sync.RWMutex
	definitions map[string]*models.ProcessDefinition
	order       []string
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:      logger,
		definitions: make(map[string]*models.ProcessDefinition),
	}
}

// Register adds a definition. Keys are unique; re-registering one fails.
func (r *Registry) Register(definition *models.ProcessDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[definition.Key]; exists {
		return persistence.NewOperationError("Register", definition.Key, persistence.ErrDefinitionAlreadyExists)
	}

	r.definitions[definition.Key] = definition
	r.order = append(r.order, definition.Key)

	r.logger.Info("Registered process definition", "key", definition.Key, "name", definition.Name)

	return nil
}

// Get returns the definition registered under key.
func (r *Registry) Get(key string) (*models.ProcessDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	definition, ok := r.definitions[key]
	if !ok {
		return nil, persistence.NewOperationError("Get", key, persistence.ErrDefinitionNotFound)
	}

	return definition, nil
}

// List returns all registered definitions in registration order.
func (r *Registry) List(pageable models.Pageable) models.Page[*models.ProcessDefinition] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	definitions := make([]*models.ProcessDefinition, 0, len(r.order))
	for _, key := range r.order {
		definitions = append(definitions, r.definitions[key])
	}

	return models.Paginate(definitions, pageable)
}
