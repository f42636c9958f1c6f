// Package snapshot хранит локальный снимок авторов с вложенными книгами.
// Снимок заменяется целиком при загрузке списка и точечно
// правится после подтверждённых API мутаций.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nlimbasiya24/bookadmin/internal/client/storage"
	"github.com/nlimbasiya24/bookadmin/internal/models"
)

const (
	// Key слот хранилища, в котором лежит снимок
	Key = "snapshot/authors"

	// SchemaVersion версия формата Envelope
	SchemaVersion = 1
)

var (
	// ErrSnapshotAbsent снимок ещё не записан или не читается
	ErrSnapshotAbsent = errors.New("snapshot absent")

	// ErrAuthorNotCached автора нет в снимке
	ErrAuthorNotCached = errors.New("author not cached")

	// ErrBookNotCached книги нет у автора в снимке
	ErrBookNotCached = errors.New("book not cached")

	// ErrDuplicateAuthor во входных данных два автора с одним id
	ErrDuplicateAuthor = errors.New("duplicate author id")
)

// Envelope формат хранения снимка
type Envelope struct {
	SavedAt time.Time       `json:"saved_at"`
	Authors []models.Author `json:"authors"`
	Version int             `json:"version"`
}

// Info сводка о снимке для команды status
type Info struct {
	SavedAt time.Time
	Version int
	Authors int
	Books   int
}

// Cache локальный снимок поверх storage.KVStore.
// Все операции read-merge-write сериализуются мьютексом.
type Cache struct {
	store  storage.KVStore
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// Option настраивает Cache
type Option func(*Cache)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New создает кеш снимка
func New(store storage.KVStore, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Write целиком заменяет снимок. Последняя запись побеждает.
func (c *Cache) Write(ctx context.Context, authors []models.Author) error {
	seen := make(map[int64]struct{}, len(authors))
	for i := range authors {
		if _, ok := seen[authors[i].ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateAuthor, authors[i].ID)
		}
		seen[authors[i].ID] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	env := &Envelope{
		Version: SchemaVersion,
		SavedAt: c.now().UTC(),
		Authors: authors,
	}
	if env.Authors == nil {
		env.Authors = []models.Author{}
	}

	// Те же данные не меняют снимок: сохраняем прежнее время записи
	if prev, err := c.load(ctx); err == nil && sameAuthors(prev.Authors, env.Authors) {
		c.logger.Debug("Snapshot unchanged", "authors", len(authors))
		return nil
	}

	if err := c.save(ctx, env); err != nil {
		return err
	}

	c.logger.Debug("Snapshot written", "authors", len(authors))
	return nil
}

// Read возвращает все авторы снимка
func (c *Cache) Read(ctx context.Context) ([]models.Author, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	env, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return env.Authors, nil
}

// FindAuthor возвращает копию записи автора
func (c *Cache) FindAuthor(ctx context.Context, authorID int64) (*models.Author, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	env, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := authorIndex(env.Authors, authorID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrAuthorNotCached, authorID)
	}

	// env только что декодирован из хранилища, поэтому запись уже отвязана от кеша
	author := env.Authors[idx]
	return &author, nil
}

// PatchBook сливает заданные поля патча в книгу автора и сохраняет снимок.
// Пустой патч не читает и не перезаписывает хранилище.
func (c *Cache) PatchBook(ctx context.Context, authorID, bookID int64, patch models.BookPatch) error {
	if patch.IsEmpty() {
		c.logger.Debug("Empty patch skipped", "author_id", authorID, "book_id", bookID)
		return nil
	}

	return c.mutate(ctx, "patch book", func(env *Envelope) error {
		author, err := findAuthor(env, authorID)
		if err != nil {
			return err
		}

		idx := author.BookIndex(bookID)
		if idx < 0 {
			return fmt.Errorf("%w: author %d book %d", ErrBookNotCached, authorID, bookID)
		}

		patch.Apply(&author.Books[idx])
		return nil
	})
}

// RemoveBook удаляет книгу и уменьшает book_count (не ниже нуля)
func (c *Cache) RemoveBook(ctx context.Context, authorID, bookID int64) error {
	return c.mutate(ctx, "remove book", func(env *Envelope) error {
		author, err := findAuthor(env, authorID)
		if err != nil {
			return err
		}

		idx := author.BookIndex(bookID)
		if idx < 0 {
			return fmt.Errorf("%w: author %d book %d", ErrBookNotCached, authorID, bookID)
		}

		author.Books = append(author.Books[:idx], author.Books[idx+1:]...)
		author.BookCount = max(author.BookCount-1, 0)
		return nil
	})
}

// AddBook добавляет книгу автору и увеличивает book_count.
// Книга с уже известным id заменяется без изменения счётчика.
func (c *Cache) AddBook(ctx context.Context, authorID int64, book models.Book) error {
	return c.mutate(ctx, "add book", func(env *Envelope) error {
		author, err := findAuthor(env, authorID)
		if err != nil {
			return err
		}

		book.AuthorID = authorID
		if idx := author.BookIndex(book.ID); idx >= 0 {
			author.Books[idx] = book
			return nil
		}

		author.Books = append(author.Books, book)
		author.BookCount++
		return nil
	})
}

// RemoveAuthor удаляет запись автора из снимка
func (c *Cache) RemoveAuthor(ctx context.Context, authorID int64) error {
	return c.mutate(ctx, "remove author", func(env *Envelope) error {
		idx := authorIndex(env.Authors, authorID)
		if idx < 0 {
			return fmt.Errorf("%w: %d", ErrAuthorNotCached, authorID)
		}
		env.Authors = append(env.Authors[:idx], env.Authors[idx+1:]...)
		return nil
	})
}

// Info возвращает сводку о снимке
func (c *Cache) Info(ctx context.Context) (*Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	env, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	info := &Info{
		SavedAt: env.SavedAt,
		Version: env.Version,
		Authors: len(env.Authors),
	}
	for i := range env.Authors {
		info.Books += len(env.Authors[i].Books)
	}
	return info, nil
}

// mutate выполняет read-merge-write под мьютексом.
// При ошибке fn снимок не перезаписывается.
func (c *Cache) mutate(ctx context.Context, op string, fn func(env *Envelope) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	env, err := c.load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(env); err != nil {
		c.logger.Debug("Snapshot mutation skipped", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.save(ctx, env); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cache) load(ctx context.Context) (*Envelope, error) {
	data, err := c.store.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrSnapshotAbsent
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Warn("Snapshot is unreadable, treating as absent", "error", err)
		return nil, ErrSnapshotAbsent
	}

	if env.Version != SchemaVersion {
		c.logger.Warn("Snapshot schema version mismatch, treating as absent",
			"version", env.Version,
			"expected", SchemaVersion)
		return nil, ErrSnapshotAbsent
	}

	return &env, nil
}

func (c *Cache) save(ctx context.Context, env *Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.store.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func sameAuthors(a, b []models.Author) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}

func authorIndex(authors []models.Author, id int64) int {
	for i := range authors {
		if authors[i].ID == id {
			return i
		}
	}
	return -1
}

func findAuthor(env *Envelope, id int64) (*models.Author, error) {
	idx := authorIndex(env.Authors, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrAuthorNotCached, id)
	}
	return &env.Authors[idx], nil
}
