package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/nlimbasiya24/bookadmin/internal/models"
	pkgapi "github.com/nlimbasiya24/bookadmin/pkg/api"
)

// DefaultTimeout время ожидания одного запроса к API
const DefaultTimeout = 30 * time.Second

var (
	// ErrUnauthorized токен отсутствует, истёк или отклонён API (401/403)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedResponse ответ API не содержит ожидаемых полей
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError описывает ответ API с кодом вне диапазона 2xx
type StatusError struct {
	Message    string
	StatusCode int
	// fromBody true, если Message взято из ErrorResponse
	fromBody bool
}

func (e *StatusError) Error() string {
	if e.fromBody {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// Unwrap позволяет проверять авторизационные ошибки через errors.Is(err, ErrUnauthorized)
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Client представляет HTTP клиент для Remote Record API
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout задаёт таймаут одного запроса
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit ограничивает количество запросов в секунду.
// rps <= 0 отключает ограничение.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger включает логирование запросов через транспорт
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.httpClient.Transport = NewLoggingTransport(c.httpClient.Transport, logger)
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login обменивает email и пароль на токен (POST /token)
func (c *Client) Login(ctx context.Context, req pkgapi.TokenRequest) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/token", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if resp.TokenKey == "" || resp.User == nil || resp.User.ID == nil {
		return nil, fmt.Errorf("login request failed: %w: token_key or user missing", ErrMalformedResponse)
	}
	return &resp, nil
}

// AuthorsPage страница списка авторов
type AuthorsPage struct {
	Authors     []models.Author
	TotalPages  int
	CurrentPage int
}

// ListAuthors получает страницу авторов, отсортированную по id
func (c *Client) ListAuthors(ctx context.Context, token string, page, limit int) (*AuthorsPage, error) {
	query := url.Values{}
	query.Set("orderBy", "id")
	query.Set("direction", "ASC")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))

	var resp pkgapi.AuthorsPage
	if err := c.doRequest(ctx, http.MethodGet, "/authors?"+query.Encode(), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("list authors request failed: %w", err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("list authors request failed: %w: items missing", ErrMalformedResponse)
	}

	result := &AuthorsPage{
		Authors:     make([]models.Author, 0, len(resp.Items)),
		TotalPages:  resp.TotalPages,
		CurrentPage: resp.CurrentPage,
	}
	// API без пагинации отвечает нулями, считаем, что страница одна
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	if result.CurrentPage < 1 {
		result.CurrentPage = page
	}

	for i := range resp.Items {
		author, err := toAuthor(&resp.Items[i])
		if err != nil {
			return nil, fmt.Errorf("list authors request failed: %w", err)
		}
		result.Authors = append(result.Authors, *author)
	}

	return result, nil
}

// GetAuthor получает автора вместе с вложенными книгами
func (c *Client) GetAuthor(ctx context.Context, token string, id int64) (*models.Author, error) {
	var resp pkgapi.Author
	path := fmt.Sprintf("/authors/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get author %d request failed: %w", id, err)
	}

	// Детальный ответ обязан содержать books: из него выводится book_count
	if resp.Books == nil {
		return nil, fmt.Errorf("get author %d request failed: %w: books missing", id, ErrMalformedResponse)
	}

	author, err := toAuthor(&resp)
	if err != nil {
		return nil, fmt.Errorf("get author %d request failed: %w", id, err)
	}

	return author, nil
}

// DeleteAuthor удаляет автора
func (c *Client) DeleteAuthor(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/authors/%d", id)
	if err := c.doRequest(ctx, http.MethodDelete, path, token, nil, nil); err != nil {
		return fmt.Errorf("delete author %d request failed: %w", id, err)
	}
	return nil
}

// CreateBook создает новую книгу
func (c *Client) CreateBook(ctx context.Context, token string, req pkgapi.BookRequest) (*models.Book, error) {
	var resp pkgapi.Book
	if err := c.doRequest(ctx, http.MethodPost, "/books", token, req, &resp); err != nil {
		return nil, fmt.Errorf("create book request failed: %w", err)
	}

	book, err := toBook(&resp, req.Author.ID)
	if err != nil {
		return nil, fmt.Errorf("create book request failed: %w", err)
	}
	return book, nil
}

// UpdateBook обновляет книгу и возвращает каноническое состояние от API
func (c *Client) UpdateBook(ctx context.Context, token string, id int64, req pkgapi.BookRequest) (*models.Book, error) {
	var resp pkgapi.Book
	path := fmt.Sprintf("/books/%d", id)
	if err := c.doRequest(ctx, http.MethodPut, path, token, req, &resp); err != nil {
		return nil, fmt.Errorf("update book %d request failed: %w", id, err)
	}

	book, err := toBook(&resp, req.Author.ID)
	if err != nil {
		return nil, fmt.Errorf("update book %d request failed: %w", id, err)
	}
	return book, nil
}

// DeleteBook удаляет книгу
func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/books/%d", id)
	if err := c.doRequest(ctx, http.MethodDelete, path, token, nil, nil); err != nil {
		return fmt.Errorf("delete book %d request failed: %w", id, err)
	}
	return nil
}

// UpdateUser обновляет профиль пользователя
func (c *Client) UpdateUser(ctx context.Context, token string, req pkgapi.UpdateUserRequest) (*models.User, error) {
	var resp pkgapi.User
	path := fmt.Sprintf("/users/%d", req.ID)
	if err := c.doRequest(ctx, http.MethodPut, path, token, req, &resp); err != nil {
		return nil, fmt.Errorf("update user request failed: %w", err)
	}

	user, err := ToUser(&resp)
	if err != nil {
		return nil, fmt.Errorf("update user request failed: %w", err)
	}
	return user, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		// API ожидает токен как есть, без префикса Bearer
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if len(bytes.TrimSpace(respBody)) == 0 {
			return fmt.Errorf("failed to decode response: %w: empty body", ErrMalformedResponse)
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newStatusError(code int, body []byte) *StatusError {
	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		for _, msg := range []string{errResp.Message, errResp.Detail, errResp.Error} {
			if msg != "" {
				return &StatusError{StatusCode: code, Message: msg, fromBody: true}
			}
		}
	}
	return &StatusError{StatusCode: code, Message: string(body)}
}
