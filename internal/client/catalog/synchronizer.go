package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nlimbasiya24/bookadmin/internal/client/api"
	"github.com/nlimbasiya24/bookadmin/internal/client/snapshot"
	"github.com/nlimbasiya24/bookadmin/internal/models"
	"github.com/nlimbasiya24/bookadmin/internal/validation"
)

// Synchronizer согласует детальный просмотр и снимок после мутаций.
// Снимок меняется только после того, как API подтвердил изменение.
type Synchronizer struct {
	cache     Snapshot
	submitter Submitter
	tokens    TokenSource
	logger    *slog.Logger
	inflight  map[string]struct{}
	mu        sync.Mutex
}

// NewSynchronizer создает синхронизатор
func NewSynchronizer(cache Snapshot, submitter Submitter, tokens TokenSource, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		cache:     cache,
		submitter: submitter,
		tokens:    tokens,
		logger:    logger,
		inflight:  make(map[string]struct{}),
	}
}

// Open читает автора из снимка и возвращает рабочую копию.
// Нет снимка или автора в нём: ErrNotLoaded.
func (s *Synchronizer) Open(ctx context.Context, authorID int64) (*DetailView, error) {
	author, err := s.cache.FindAuthor(ctx, authorID)
	if err != nil {
		if errors.Is(err, snapshot.ErrSnapshotAbsent) || errors.Is(err, snapshot.ErrAuthorNotCached) {
			return nil, fmt.Errorf("%w: author %d", ErrNotLoaded, authorID)
		}
		return nil, err
	}

	return newDetailView(author)
}

// EditBook отправляет title, description и format книги в API.
// При успехе канонические поля из ответа попадают в рабочую копию и в снимок.
// Если снимок уже не содержит книгу, возвращается обновлённая книга и ErrNotLoaded.
func (s *Synchronizer) EditBook(ctx context.Context, view *DetailView, bookID int64, input validation.EditBookInput) (*models.Book, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	current, ok := view.Book(bookID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBookNotInView, bookID)
	}

	release, err := s.begin("edit", bookID)
	if err != nil {
		return nil, err
	}
	defer release()

	view.setState(bookID, Submitting)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		view.setState(bookID, Failed)
		return nil, err
	}

	edited := current
	edited.Title = input.Title
	edited.Description = input.Description
	edited.Format = input.Format

	updated, err := s.submitter.UpdateBook(ctx, token, bookID, api.BookRequestFrom(&edited))
	if err != nil {
		view.setState(bookID, Failed)
		s.logger.Warn("Book update rejected", "book_id", bookID, "error", err)
		return nil, fmt.Errorf("failed to update book %d: %w", bookID, err)
	}

	patch := models.CanonicalPatch(updated)
	view.applyPatch(bookID, patch)
	view.setState(bookID, Succeeded)

	authorID := view.Author().ID
	s.logger.Info("Book updated", "author_id", authorID, "book_id", bookID)

	return updated, s.reconcile(ctx, "patch", authorID, bookID, s.cache.PatchBook(ctx, authorID, bookID, patch))
}

// DeleteBook удаляет книгу в API, затем из рабочей копии и снимка.
// ErrNotLoaded означает, что API удалил книгу, но снимок требует перезагрузки.
func (s *Synchronizer) DeleteBook(ctx context.Context, view *DetailView, bookID int64) error {
	if _, ok := view.Book(bookID); !ok {
		return fmt.Errorf("%w: %d", ErrBookNotInView, bookID)
	}

	release, err := s.begin("delete", bookID)
	if err != nil {
		return err
	}
	defer release()

	view.setState(bookID, Submitting)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		view.setState(bookID, Failed)
		return err
	}

	if err := s.submitter.DeleteBook(ctx, token, bookID); err != nil {
		view.setState(bookID, Failed)
		s.logger.Warn("Book delete rejected", "book_id", bookID, "error", err)
		return fmt.Errorf("failed to delete book %d: %w", bookID, err)
	}

	view.removeBook(bookID)
	view.setState(bookID, Succeeded)

	authorID := view.Author().ID
	s.logger.Info("Book deleted", "author_id", authorID, "book_id", bookID)

	return s.reconcile(ctx, "remove", authorID, bookID, s.cache.RemoveBook(ctx, authorID, bookID))
}

// AddBook создает книгу и, если автор есть в снимке, добавляет её туда
func (s *Synchronizer) AddBook(ctx context.Context, input validation.BookInput) (*models.Book, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		AuthorID:      input.AuthorID,
		Title:         input.Title,
		ReleaseDate:   input.ReleaseDate,
		Description:   input.Description,
		ISBN:          input.ISBN,
		Format:        input.Format,
		NumberOfPages: input.NumberOfPages,
	}

	created, err := s.submitter.CreateBook(ctx, token, api.BookRequestFrom(book))
	if err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	s.logger.Info("Book added", "author_id", input.AuthorID, "book_id", created.ID)

	// Автор может быть на другой странице списка: тогда снимок просто не содержит его
	err = s.cache.AddBook(ctx, input.AuthorID, *created)
	if errors.Is(err, snapshot.ErrSnapshotAbsent) || errors.Is(err, snapshot.ErrAuthorNotCached) {
		return created, nil
	}
	return created, s.reconcile(ctx, "add", input.AuthorID, created.ID, err)
}

// DeleteAuthor удаляет автора без книг.
// Число книг берётся из снимка; автора вне снимка удалить нельзя.
func (s *Synchronizer) DeleteAuthor(ctx context.Context, authorID int64) error {
	author, err := s.cache.FindAuthor(ctx, authorID)
	if err != nil {
		if errors.Is(err, snapshot.ErrSnapshotAbsent) || errors.Is(err, snapshot.ErrAuthorNotCached) {
			return fmt.Errorf("%w: author %d", ErrNotLoaded, authorID)
		}
		return err
	}
	if author.BookCount > 0 {
		return fmt.Errorf("%w: author %d has %d books", ErrAuthorHasBooks, authorID, author.BookCount)
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}

	if err := s.submitter.DeleteAuthor(ctx, token, authorID); err != nil {
		return fmt.Errorf("failed to delete author %d: %w", authorID, err)
	}

	if err := s.cache.RemoveAuthor(ctx, authorID); err != nil {
		s.logger.Warn("Snapshot not updated after author delete", "author_id", authorID, "error", err)
	}

	s.logger.Info("Author deleted", "author_id", authorID)
	return nil
}

// begin помечает изменение книги как выполняющееся.
// Повторная отправка того же изменения до завершения первой отклоняется.
func (s *Synchronizer) begin(kind string, bookID int64) (func(), error) {
	key := fmt.Sprintf("%s:%d", kind, bookID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[key]; busy {
		return nil, fmt.Errorf("%w: %s book %d", ErrMutationInFlight, kind, bookID)
	}
	s.inflight[key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}, nil
}

// reconcile превращает ошибку снимка после подтверждённой мутации в ErrNotLoaded.
// API уже принял изменение, поэтому результат мутации остаётся в силе,
// а вызывающий должен заново загрузить список.
func (s *Synchronizer) reconcile(ctx context.Context, op string, authorID, bookID int64, err error) error {
	if err == nil {
		return nil
	}
	s.logger.WarnContext(ctx, "Snapshot not updated after confirmed mutation",
		"op", op,
		"author_id", authorID,
		"book_id", bookID,
		"error", err)
	return fmt.Errorf("%w: %w", ErrNotLoaded, err)
}
