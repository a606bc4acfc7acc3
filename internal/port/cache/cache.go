// Package cache defines the port interface for short-lived in-process
// caching. Its only consumer is webhook delivery dedup; the form-call
// chains stay cache-free.
package cache

import (
	"context"
	"time"
)

// Cache is the port interface for byte-value caching with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
