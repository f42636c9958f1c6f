package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nlimbasiya24/bookadmin/internal/client/api"
	"github.com/nlimbasiya24/bookadmin/internal/models"
)

const (
	// DefaultPageSize размер страницы списка авторов
	DefaultPageSize = 12

	// DefaultFanoutLimit число одновременных запросов деталей автора
	DefaultFanoutLimit = 4
)

// LoaderConfig параметры загрузки списка
type LoaderConfig struct {
	PageSize    int
	FanoutLimit int
	// AllowPartial кеширует успешно загруженных авторов, даже если часть запросов упала
	AllowPartial bool
}

// AuthorFailure ошибка загрузки деталей одного автора
type AuthorFailure struct {
	Err      error
	AuthorID int64
}

func (f *AuthorFailure) Error() string {
	return fmt.Sprintf("author %d: %v", f.AuthorID, f.Err)
}

func (f *AuthorFailure) Unwrap() error {
	return f.Err
}

// PageResult результат загрузки страницы
type PageResult struct {
	Authors     []models.Author
	Failures    []AuthorFailure
	CurrentPage int
	TotalPages  int
}

// Loader загружает страницу авторов с книгами и перезаписывает снимок
type Loader struct {
	reader Reader
	cache  Snapshot
	tokens TokenSource
	logger *slog.Logger
	group  singleflight.Group
	cfg    LoaderConfig
}

// NewLoader создает загрузчик
func NewLoader(reader Reader, cache Snapshot, tokens TokenSource, logger *slog.Logger, cfg LoaderConfig) *Loader {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.FanoutLimit <= 0 {
		cfg.FanoutLimit = DefaultFanoutLimit
	}

	return &Loader{
		reader: reader,
		cache:  cache,
		tokens: tokens,
		logger: logger,
		cfg:    cfg,
	}
}

// LoadPage получает страницу авторов, детали каждого автора и записывает снимок.
// Одновременные загрузки одной страницы объединяются в один запрос.
// Общая загрузка не зависит от отмены ctx отдельного вызывающего:
// отменённый вызов возвращает ctx.Err(), остальные дожидаются результата.
func (l *Loader) LoadPage(ctx context.Context, page int) (*PageResult, error) {
	if page < 1 {
		page = 1
	}

	detached := context.WithoutCancel(ctx)
	ch := l.group.DoChan(strconv.Itoa(page), func() (interface{}, error) {
		return l.loadPage(detached, page)
	})

	select {
	case <-ctx.Done():
		l.logger.Debug("Page load abandoned", "page", page, "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			l.logger.Debug("Joined in-flight page load", "page", page)
		}
		return res.Val.(*PageResult), nil
	}
}

func (l *Loader) loadPage(ctx context.Context, page int) (*PageResult, error) {
	token, err := l.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loading authors page", "page", page, "limit", l.cfg.PageSize)

	list, err := l.reader.ListAuthors(ctx, token, page, l.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	details := make([]*models.Author, len(list.Authors))
	failures := make([]*AuthorFailure, len(list.Authors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.FanoutLimit)

	for i := range list.Authors {
		id := list.Authors[i].ID
		g.Go(func() error {
			author, err := l.reader.GetAuthor(gctx, token, id)
			if err != nil {
				failure := &AuthorFailure{AuthorID: id, Err: err}
				// Ошибка авторизации прерывает загрузку при любой политике
				if !l.cfg.AllowPartial || errors.Is(err, api.ErrUnauthorized) {
					return failure
				}
				failures[i] = failure
				return nil
			}
			// book_count всегда выводится из числа книг
			author.BookCount = len(author.Books)
			details[i] = author
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Warn("Authors page load failed, snapshot left unchanged", "page", page, "error", err)
		return nil, fmt.Errorf("failed to load author details: %w", err)
	}

	result := &PageResult{
		Authors:     make([]models.Author, 0, len(details)),
		CurrentPage: list.CurrentPage,
		TotalPages:  list.TotalPages,
	}
	for i := range details {
		if details[i] != nil {
			result.Authors = append(result.Authors, *details[i])
		}
		if failures[i] != nil {
			result.Failures = append(result.Failures, *failures[i])
		}
	}

	if err := l.cache.Write(ctx, result.Authors); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	l.logger.Info("Authors page loaded",
		"page", result.CurrentPage,
		"total_pages", result.TotalPages,
		"authors", len(result.Authors),
		"failed", len(result.Failures))

	return result, nil
}
