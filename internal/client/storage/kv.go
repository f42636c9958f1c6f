package storage

import "context"

//go:generate moq -out kvstore_mock.go . KVStore

// KVStore defines a minimal key-value store used by the local snapshot cache.
// Values are opaque bytes; the caller owns serialization.
type KVStore interface {
	// Get returns the value stored under key
	// Returns ErrKeyNotFound if the key has no value
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
