// Package kvstore defines the port interface for the chat platform's
// generic key/value store. The store is schema-agnostic: values are opaque
// JSON documents addressed by string key; callers pick the payload schema.
package kvstore

import "context"

// Store is the port interface for key/value persistence.
type Store interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error

	// Get loads the value stored under key into out.
	// Returns domain.ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string, out any) error

	// Delete removes the value stored under key.
	Delete(ctx context.Context, key string) error
}
