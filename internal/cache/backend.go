package cache

import (
	"context"
	"io"

	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

// Backend stores cache archives under an object name
type Backend interface {
	// Upload stores size bytes read from reader under object
	Upload(ctx context.Context, reader io.Reader, size int64, object string) error

	// Configure sets up the backend with the given configuration.
	// Backends that contact a service do so with ctx.
	Configure(ctx context.Context, config confmap.Map) error

	// Name returns the backend name
	Name() string
}
