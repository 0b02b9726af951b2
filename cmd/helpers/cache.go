package helpers

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/zinc-sig/firebuild-cache/cmd/config"
	"github.com/zinc-sig/firebuild-cache/internal/cache"
	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

// ConfigEnvPrefix prefixes environment variables holding backend configuration
const ConfigEnvPrefix = "FIREBUILD_CACHE_CONFIG"

// BuildCacheConfig builds cache backend configuration from all sources
func BuildCacheConfig(cfg *config.CacheConfig) (confmap.Map, error) {
	// Precedence: env < file < json < kv
	result, err := confmap.Build(ConfigEnvPrefix, confmap.Sources{
		File: cfg.ConfigFile,
		JSON: cfg.Config,
		KV:   cfg.ConfigKV,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build cache config: %w", err)
	}
	return result, nil
}

// SetupCacheBackend creates and configures a cache backend
func SetupCacheBackend(ctx context.Context, cfg *config.CacheConfig) (cache.Backend, confmap.Map, error) {
	if cfg.Backend == "" {
		return nil, nil, fmt.Errorf("no cache backend configured, use --cache-backend or FIREBUILD_CACHE_BACKEND")
	}

	backendConf, err := BuildCacheConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	backend, err := cache.NewBackend(cfg.Backend)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cache backend: %w", err)
	}

	if err := backend.Configure(ctx, backendConf); err != nil {
		return nil, nil, fmt.Errorf("failed to configure cache backend: %w", err)
	}

	return backend, backendConf, nil
}

// LazySaver configures the backend on first use, so runs that skip
// saving never touch the cache service
type LazySaver struct {
	Config  *config.CacheConfig
	WorkDir string
	Logger  log.Logger
	Verbose func(backend cache.Backend, conf confmap.Map)
}

// Save implements step.Saver
func (l *LazySaver) Save(ctx context.Context, paths []string, key string) (*cache.SaveResult, error) {
	backend, conf, err := SetupCacheBackend(ctx, l.Config)
	if err != nil {
		return nil, err
	}
	if l.Logger != nil {
		level.Debug(l.Logger).Log("msg", "cache backend configured", "backend", backend.Name())
	}
	if l.Verbose != nil {
		l.Verbose(backend, conf)
	}

	saver := &cache.Saver{Backend: backend, WorkDir: l.WorkDir, Logger: l.Logger}
	return saver.Save(ctx, paths, key)
}
