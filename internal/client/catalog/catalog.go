// Package catalog связывает Remote Record API и локальный снимок:
// загрузка страницы авторов заполняет снимок, детальный просмотр
// читает из него, а подтверждённые API мутации правят обе копии.
package catalog

import (
	"context"
	"errors"

	"github.com/nlimbasiya24/bookadmin/internal/client/api"
	"github.com/nlimbasiya24/bookadmin/internal/models"
	pkgapi "github.com/nlimbasiya24/bookadmin/pkg/api"
)

//go:generate moq -out mocks_test.go . Reader Submitter TokenSource

var (
	// ErrNotLoaded автор отсутствует в снимке: нужно заново загрузить список
	ErrNotLoaded = errors.New("author data not loaded")

	// ErrMutationInFlight по этой книге уже выполняется изменение
	ErrMutationInFlight = errors.New("mutation already in flight")

	// ErrAuthorHasBooks автора с книгами удалить нельзя
	ErrAuthorHasBooks = errors.New("author has books")

	// ErrBookNotInView книги нет в рабочей копии автора
	ErrBookNotInView = errors.New("book not in view")
)

// Reader читает авторов из API
type Reader interface {
	ListAuthors(ctx context.Context, token string, page, limit int) (*api.AuthorsPage, error)
	GetAuthor(ctx context.Context, token string, id int64) (*models.Author, error)
}

// Submitter отправляет изменения в API и возвращает подтверждённое состояние
type Submitter interface {
	CreateBook(ctx context.Context, token string, req pkgapi.BookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, token string, id int64, req pkgapi.BookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, token string, id int64) error
	DeleteAuthor(ctx context.Context, token string, id int64) error
}

// TokenSource возвращает токен текущей сессии
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Snapshot операции локального снимка, нужные каталогу
type Snapshot interface {
	Write(ctx context.Context, authors []models.Author) error
	FindAuthor(ctx context.Context, authorID int64) (*models.Author, error)
	PatchBook(ctx context.Context, authorID, bookID int64, patch models.BookPatch) error
	RemoveBook(ctx context.Context, authorID, bookID int64) error
	AddBook(ctx context.Context, authorID int64, book models.Book) error
	RemoveAuthor(ctx context.Context, authorID int64) error
}
