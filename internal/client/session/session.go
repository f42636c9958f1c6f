// Package session хранит токен API и профиль пользователя между запусками.
// Сессия сохраняется как JWT, подписанный HS256 ключом из SESSION_SECRET:
// подменённая или чужая запись не принимается.
package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/nlimbasiya24/bookadmin/internal/client/storage"
	"github.com/nlimbasiya24/bookadmin/internal/models"
)

const (
	issuer  = "bookadmin"
	keyInfo = "bookadmin session signing key v1"
	keySize = 32
)

var (
	// ErrNotAuthenticated сессии нет, она истекла или не прошла проверку подписи
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingSecret SESSION_SECRET не задан
	ErrMissingSecret = errors.New("SESSION_SECRET must be set")
)

// Session данные авторизованного пользователя
type Session struct {
	IssuedAt time.Time
	Token    string
	User     models.User
}

// Claims полезная нагрузка подписанной сессии
type Claims struct {
	jwt.RegisteredClaims
	Token string      `json:"tok"`
	User  models.User `json:"usr"`
}

// Store подписывает сессию и сохраняет её в storage.SessionStorage
type Store struct {
	storage storage.SessionStorage
	now     func() time.Time
	key     []byte
	ttl     time.Duration
}

// Option настраивает Store
type Option func(*Store)

// WithTTL ограничивает время жизни сессии, 0 означает без ограничения
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// DeriveKey выводит ключ подписи из секрета через HKDF-SHA256
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return key, nil
}

// NewStore создает хранилище сессии. Пустой secret считается ошибкой запуска.
func NewStore(st storage.SessionStorage, secret string, opts ...Option) (*Store, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	s := &Store{
		storage: st,
		key:     key,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save подписывает и сохраняет сессию
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return fmt.Errorf("session token is empty")
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  fmt.Sprintf("%d", sess.User.ID),
			IssuedAt: jwt.NewNumericDate(now),
		},
		Token: sess.Token,
		User:  sess.User,
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	if err := s.storage.SaveSession(ctx, []byte(signed)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load читает и проверяет сессию
func (s *Store) Load(ctx context.Context) (*Session, error) {
	raw, err := s.storage.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(string(raw), &claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	if claims.Token == "" {
		return nil, fmt.Errorf("%w: token missing", ErrNotAuthenticated)
	}

	sess := &Session{
		Token: claims.Token,
		User:  claims.User,
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	return sess, nil
}

// Destroy удаляет сессию; отсутствие сессии не ошибка
func (s *Store) Destroy(ctx context.Context) error {
	if err := s.storage.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
