package cache

import (
	"fmt"
	"maps"
	"slices"
)

// BackendFactory is a function that creates a new backend instance
type BackendFactory func() Backend

// Registry holds all available cache backends
var Registry = make(map[string]BackendFactory)

// RegisterBackend registers a new cache backend
func RegisterBackend(name string, factory BackendFactory) {
	Registry[name] = factory
}

// NewBackend creates a new backend instance by name
func NewBackend(name string) (Backend, error) {
	factory, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown cache backend: %s (available: %v)", name, BackendNames())
	}
	return factory(), nil
}

// BackendNames lists the registered backends in sorted order
func BackendNames() []string {
	return slices.Sorted(maps.Keys(Registry))
}

// init registers all built-in backends
func init() {
	RegisterBackend("minio", func() Backend {
		return NewMinioBackend()
	})
	RegisterBackend("local", func() Backend {
		return NewLocalBackend()
	})
	RegisterBackend("http", func() Backend {
		return NewHTTPBackend()
	})
}
