package engine

import (
	"fmt"

	"tierparse/internal/config"
	"tierparse/internal/domain"
	"tierparse/internal/port"
)

// BackendFactory is a function that creates an Engine for one backend
// variant from its tier config.
type BackendFactory func(cfg *config.TierConfig) port.Engine

// registry of backend factories, populated by each adapter package's
// init; main blank-imports the adapters it ships.
var backends = map[domain.Backend]BackendFactory{}

// RegisterBackend registers an engine factory for a backend variant.
func RegisterBackend(b domain.Backend, factory BackendFactory) {
	backends[b] = factory
}

// NewEngine creates the Engine for a backend variant using the
// registered factory.
func NewEngine(b domain.Backend, cfg *config.TierConfig) (port.Engine, error) {
	factory, ok := backends[b]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", b)
	}
	return factory(cfg), nil
}
