package kv

import (
	"context"
)

// Repository is a flat string-keyed byte store. Every backend honors the
// same contract, checked by TestContract.
type Repository interface {
	// Get returns the stored value, or nil, nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or overwrites the key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns a copy of every key and value in the namespace.
	List(ctx context.Context) (map[string][]byte, error)
	// Clear removes every key in the namespace.
	Clear(ctx context.Context) error
}
