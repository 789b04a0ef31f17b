package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goflowd/flowd/pkg/identity"
)

type userEntry struct {
	ID     string   `json:"id"`
	Secret string   `json:"secret"`
	Groups []string `json:"groups,omitempty"`
}

// NewIdentityManager builds the in-memory identity manager from a JSON user
// table. The runtime consumes principals; maintaining real users belongs to
// an external identity provider.
func NewIdentityManager(usersPath string) identity.Manager {
	manager := identity.NewInMemoryManager()

	if usersPath == "" {
		return manager
	}

	document, err := os.ReadFile(usersPath)
	if err != nil {
		panic(fmt.Errorf("failed to read users file %s: %w", usersPath, err))
	}

	var entries []userEntry
	if err := json.Unmarshal(document, &entries); err != nil {
		panic(fmt.Errorf("failed to decode users file %s: %w", usersPath, err))
	}

	for _, entry := range entries {
		manager.AddUser(entry.ID, entry.Secret, entry.Groups...)
	}

	return manager
}
