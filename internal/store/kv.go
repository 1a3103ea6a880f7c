package store

import (
	"context"
	"fmt"
	"strings"
)

// KV is the durable key-value backend the gateway writes through.
type KV interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open picks a backend by name. SQLite needs the store directory; Redis needs
// a redis:// URL.
func Open(ctx context.Context, backend string, s Store, redisURL string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return OpenSQLiteKV(ctx, s.SQLitePath())
	case BackendRedis:
		return OpenRedisKV(ctx, redisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (expected sqlite|redis)", backend)
	}
}
