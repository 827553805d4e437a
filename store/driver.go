package store

import "context"

// Driver is the key-value persistence contract the core is injected with.
// Writes are whole-value, last-write-wins per key.
type Driver interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	Close() error
}
