package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/nlimbasiya24/bookadmin/internal/client/storage"
)

var sessionKey = []byte("current")

// SaveSession stores the signed session blob
func (s *Storage) SaveSession(ctx context.Context, signed []byte) error {
	return s.update(bucketSession, func(bucket *bbolt.Bucket) error {
		if err := bucket.Put(sessionKey, signed); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// GetSession retrieves the signed session blob
func (s *Storage) GetSession(ctx context.Context) ([]byte, error) {
	var signed []byte

	err := s.view(bucketSession, func(bucket *bbolt.Bucket) error {
		data := bucket.Get(sessionKey)
		if data == nil {
			return storage.ErrSessionNotFound
		}
		// Значение валидно только внутри транзакции, копируем
		signed = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return signed, nil
}

// DeleteSession removes the stored session (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.update(bucketSession, func(bucket *bbolt.Bucket) error {
		// Проверяем существование данных
		if bucket.Get(sessionKey) == nil {
			return storage.ErrSessionNotFound
		}
		if err := bucket.Delete(sessionKey); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}
