package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/nlimbasiya24/bookadmin/internal/client/storage"
)

// Get returns the value stored under key in the cache bucket
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.view(bucketCache, func(bucket *bbolt.Bucket) error {
		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores value under key in the cache bucket
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	return s.update(bucketCache, func(bucket *bbolt.Bucket) error {
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to put %q: %w", key, err)
		}
		return nil
	})
}

// Delete removes key from the cache bucket
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.update(bucketCache, func(bucket *bbolt.Bucket) error {
		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}
		return nil
	})
}
