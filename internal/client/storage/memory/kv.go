// Package memory содержит KVStore в памяти процесса.
// Используется в тестах и при cache_backend = "memory".
package memory

import (
	"context"
	"sync"

	"github.com/nlimbasiya24/bookadmin/internal/client/storage"
)

// Store хранит значения в map под мьютексом
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// New создает пустое хранилище
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get возвращает копию значения
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set сохраняет копию значения
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

// Delete удаляет ключ; отсутствие ключа не ошибка
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
