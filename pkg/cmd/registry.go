package cmd

import (
	"fmt"
	"log/slog"

	"github.com/goflowd/flowd/pkg/registry"
)

// NewRegistry builds the definition registry, seeded from the JSON documents
// in definitionsPath (when non-empty). Definitions are the external loader's
// responsibility; a bad document fails startup rather than surfacing later.
func NewRegistry(logger *slog.Logger, definitionsPath string) *registry.Registry {
	reg := registry.NewRegistry(logger)

	if definitionsPath != "" {
		if err := reg.LoadDir(definitionsPath); err != nil {
			panic(fmt.Errorf("failed to load process definitions: %w", err))
		}
	}

	return reg
}
