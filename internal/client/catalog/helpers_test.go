package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nlimbasiya24/bookadmin/internal/client/snapshot"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage/memory"
	"github.com/nlimbasiya24/bookadmin/internal/models"
)

const testToken = "token-123"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(t *testing.T) *snapshot.Cache {
	t.Helper()
	return snapshot.New(memory.New(), testLogger())
}

func staticToken() *TokenSourceMock {
	return &TokenSourceMock{
		TokenFunc: func(ctx context.Context) (string, error) {
			return testToken, nil
		},
	}
}

func herbert() models.Author {
	return models.Author{
		ID:        1,
		FirstName: "Frank",
		LastName:  "Herbert",
		BookCount: 3,
		Books: []models.Book{
			{ID: 10, AuthorID: 1, Title: "Dune", Format: "Hardcover", ReleaseDate: "1965-08-01", ISBN: "9780441013593", NumberOfPages: 412, Description: "Desert planet"},
			{ID: 11, AuthorID: 1, Title: "Foundation", Format: "Paperback", ReleaseDate: "1951-06-01", NumberOfPages: 255},
			{ID: 12, AuthorID: 1, Title: "Dune Messiah", Format: "Paperback", ReleaseDate: "1969-10-15", NumberOfPages: 256},
		},
	}
}

func asimov() models.Author {
	return models.Author{
		ID:        2,
		FirstName: "Isaac",
		LastName:  "Asimov",
		Books:     []models.Book{},
	}
}

func seedCache(t *testing.T, cache *snapshot.Cache, authors ...models.Author) {
	t.Helper()
	require.NoError(t, cache.Write(context.Background(), authors))
}
