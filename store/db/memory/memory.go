// Package memory implements the key-value driver as a mutex-guarded map.
// It backs tests and throwaway dev runs; nothing survives the process.
package memory

import (
	"context"
	"sync"
)

// DB is the in-memory key-value driver.
type DB struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewDB creates a new in-memory driver.
func NewDB() *DB {
	return &DB{values: make(map[string]string)}
}

func (d *DB) Get(_ context.Context, key string) (string, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.values[key]
	return value, ok, nil
}

func (d *DB) Set(_ context.Context, key string, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[key] = value
	return nil
}

func (d *DB) Remove(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.values, key)
	return nil
}

func (d *DB) Close() error {
	return nil
}
