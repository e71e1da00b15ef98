package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. Used when caching is disabled.
type NullCache struct{}

// NewNullCache creates a no-op cache.
func NewNullCache() *NullCache { return &NullCache{} }

var _ Cache = (*NullCache)(nil)

func (*NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (*NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (*NullCache) Delete(ctx context.Context, key string) error { return nil }

func (*NullCache) Close() error { return nil }
