package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/nlimbasiya24/bookadmin/internal/client/api"
	"github.com/nlimbasiya24/bookadmin/internal/client/auth"
	"github.com/nlimbasiya24/bookadmin/internal/client/catalog"
	"github.com/nlimbasiya24/bookadmin/internal/client/iocli"
	"github.com/nlimbasiya24/bookadmin/internal/client/session"
	"github.com/nlimbasiya24/bookadmin/internal/client/snapshot"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage/boltdb"
	"github.com/nlimbasiya24/bookadmin/internal/client/storage/memory"
	"github.com/nlimbasiya24/bookadmin/internal/config"
	"github.com/nlimbasiya24/bookadmin/internal/models"
	pkgapi "github.com/nlimbasiya24/bookadmin/pkg/api"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "secret"
	testToken    = "tok-1"
)

// fakeAPI имитирует Remote Record API в памяти
type fakeAPI struct {
	authors     map[int64]*models.Author
	failAuthors map[int64]int
	requests    []string
	nextBookID  int64
	totalPages  int
	mu          sync.Mutex
}

func newFakeAPI(authors ...models.Author) *fakeAPI {
	f := &fakeAPI{
		authors:     make(map[int64]*models.Author),
		failAuthors: make(map[int64]int),
		nextBookID:  100,
		totalPages:  1,
	}
	for i := range authors {
		a := authors[i]
		if a.Books == nil {
			a.Books = []models.Book{}
		}
		f.authors[a.ID] = &a
	}
	return f
}

func (f *fakeAPI) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.requests = append(f.requests, r.Method+" "+r.URL.Path)
			f.mu.Unlock()

			if r.Header.Get("Authorization") != testToken {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "invalid token"}`))
				return
			}
			next(w, r)
		}
	}

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.TokenRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != testEmail || req.Password != testPassword {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token_key": "` + testToken + `", "user": {"id": 7, "email": "` + testEmail + `", "first_name": "Ada", "last_name": "Lovelace", "gender": "female", "active": true, "email_confirmed": true}}`))
	})

	mux.HandleFunc("GET /authors", authorized(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		f.mu.Lock()
		items := make([]models.Author, 0, len(f.authors))
		for _, a := range f.authors {
			short := *a
			short.Books = nil
			items = append(items, short)
		}
		total := f.totalPages
		f.mu.Unlock()

		writeJSON(w, map[string]any{"items": items, "total_pages": total, "current_page": page})
	}))

	mux.HandleFunc("GET /authors/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		if code, ok := f.failAuthors[id]; ok {
			w.WriteHeader(code)
			return
		}
		a, ok := f.authors[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, a)
	}))

	mux.HandleFunc("DELETE /authors/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		delete(f.authors, id)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("POST /books", authorized(func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.BookRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		f.mu.Lock()
		defer f.mu.Unlock()
		a, ok := f.authors[req.Author.ID]
		if !ok {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message": "author not found"}`))
			return
		}
		f.nextBookID++
		book := models.Book{
			ID:            f.nextBookID,
			AuthorID:      a.ID,
			Title:         req.Title,
			ReleaseDate:   req.ReleaseDate,
			Description:   req.Description,
			ISBN:          req.ISBN,
			Format:        req.Format,
			NumberOfPages: req.NumberOfPages,
		}
		a.Books = append(a.Books, book)
		writeJSON(w, book)
	}))

	mux.HandleFunc("PUT /books/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var req pkgapi.BookRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		f.mu.Lock()
		defer f.mu.Unlock()
		a, ok := f.authors[req.Author.ID]
		if !ok || a.BookIndex(id) < 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		b := &a.Books[a.BookIndex(id)]
		// API нормализует название: так видно, что в снимок попадает ответ, а не ввод
		b.Title = strings.TrimSpace(req.Title)
		b.Description = req.Description
		b.Format = req.Format
		writeJSON(w, b)
	}))

	mux.HandleFunc("DELETE /books/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, a := range f.authors {
			if i := a.BookIndex(id); i >= 0 {
				a.Books = append(a.Books[:i], a.Books[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	mux.HandleFunc("PUT /users/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.UpdateUserRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		id := req.ID
		writeJSON(w, pkgapi.User{
			ID:             &id,
			Email:          req.Email,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Gender:         req.Gender,
			Active:         req.Active,
			EmailConfirmed: req.EmailConfirmed,
		})
	}))

	return mux
}

type testEnv struct {
	cli    *Cli
	out    *bytes.Buffer
	api    *fakeAPI
	cache  *snapshot.Cache
	auth   auth.Service
	client *apiclient.Client
}

// newTestEnv собирает CLI поверх fakeAPI; input подаётся на stdin
func newTestEnv(t *testing.T, fake *fakeAPI, input string) *testEnv {
	t.Helper()

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	st, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sessions, err := session.NewStore(st, "test-secret")
	require.NoError(t, err)

	logger := discardLogger()
	client := apiclient.NewClient(server.URL)
	authService := auth.NewService(client, sessions, logger)
	cache := snapshot.New(memory.New(), logger)

	cfg := config.Default(t.TempDir())
	cfg.APIURL = server.URL

	out := &bytes.Buffer{}
	c := New(iocli.NewStdioWith(strings.NewReader(input), out), "test")
	c.errOut = io.Discard
	c.cfg = &cfg
	c.logger = logger
	c.svc = &Services{
		Auth:   authService,
		Loader: catalog.NewLoader(client, cache, authService, logger, catalog.LoaderConfig{PageSize: cfg.PageSize, FanoutLimit: cfg.FanoutLimit}),
		Sync:   catalog.NewSynchronizer(cache, client, authService, logger),
		Cache:  cache,
	}

	return &testEnv{cli: c, out: out, api: fake, cache: cache, auth: authService, client: client}
}

func newPartialLoader(t *testing.T, env *testEnv) *catalog.Loader {
	t.Helper()
	return catalog.NewLoader(env.client, env.cache, env.auth, discardLogger(), catalog.LoaderConfig{
		PageSize:     env.cli.cfg.PageSize,
		FanoutLimit:  env.cli.cfg.FanoutLimit,
		AllowPartial: env.cli.cfg.AllowPartialLoad,
	})
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	_, err := e.auth.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
}

func (e *testEnv) run(args ...string) error {
	return e.cli.Execute(context.Background(), args)
}

func herbert() models.Author {
	return models.Author{
		ID:           1,
		FirstName:    "Frank",
		LastName:     "Herbert",
		Birthday:     "1920-10-08T00:00:00+00:00",
		PlaceOfBirth: "Tacoma",
		Books: []models.Book{
			{ID: 10, AuthorID: 1, Title: "Dune", Format: "Hardcover", ReleaseDate: "1965-08-01T00:00:00+00:00", NumberOfPages: 412},
			{ID: 11, AuthorID: 1, Title: "Children of Dune", Format: "Paperback", ReleaseDate: "1976-04-01T00:00:00+00:00", NumberOfPages: 444},
		},
	}
}

func lem() models.Author {
	return models.Author{ID: 2, FirstName: "Stanislaw", LastName: "Lem"}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
