// Package identity supplies the authenticated principal the engine consumes.
// The engine never authenticates anything itself: it trusts this projection
// of an external identity system.
package identity

import (
	"crypto/subtle"
	"errors"
	"sync"
)

var (
	// ErrUnknownPrincipal is returned for an id with no registered user.
	ErrUnknownPrincipal = errors.New("unknown principal")

	// ErrBadCredentials is returned when the supplied secret does not match.
	ErrBadCredentials = errors.New("bad credentials")
)

// Principal is an already-authenticated caller and its group memberships.
type Principal struct {
	ID     string   `json:"id"`
	Groups []string `json:"groups"`
}

// InGroup reports whether the principal belongs to the named group.
func (p Principal) InGroup(group string) bool {
	for _, g := range p.Groups {
		if g == group {
			return true
		}
	}

	return false
}

// Manager resolves principals for the transport layer.
type Manager interface {
	Authenticate(id, secret string) (Principal, error)
	PrincipalByID(id string) (Principal, error)
}

type user struct {
	secret    string
	principal Principal
}

// InMemoryManager is a Manager backed by a static user table, for tests and
// single-node deployments. Credential storage and hashing belong to a real
// identity provider; secrets here are compared in constant time and that is
// the extent of it.
type InMemoryManager struct {
	mu    sync.RWMutex
	users map[string]user
}

// NewInMemoryManager creates an empty manager.
func NewInMemoryManager() *InMemoryManager {
	return &InMemoryManager{users: make(map[string]user)}
}

// AddUser registers a user with its secret and group memberships.
func (m *InMemoryManager) AddUser(id, secret string, groups ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[id] = user{
		secret:    secret,
		principal: Principal{ID: id, Groups: groups},
	}
}

func (m *InMemoryManager) Authenticate(id, secret string) (Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return Principal{}, ErrUnknownPrincipal
	}

	if subtle.ConstantTimeCompare([]byte(u.secret), []byte(secret)) != 1 {
		return Principal{}, ErrBadCredentials
	}

	return u.principal, nil
}

func (m *InMemoryManager) PrincipalByID(id string) (Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return Principal{}, ErrUnknownPrincipal
	}

	return u.principal, nil
}
