package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nlimbasiya24/bookadmin/internal/client/api"
	"github.com/nlimbasiya24/bookadmin/internal/client/session"
	"github.com/nlimbasiya24/bookadmin/internal/models"
	"github.com/nlimbasiya24/bookadmin/internal/validation"
	pkgapi "github.com/nlimbasiya24/bookadmin/pkg/api"
)

// ErrInvalidCredentials API отклонил email или пароль
var ErrInvalidCredentials = errors.New("invalid credentials")

// APIClient методы Remote Record API, нужные авторизации
type APIClient interface {
	Login(ctx context.Context, req pkgapi.TokenRequest) (*pkgapi.TokenResponse, error)
	UpdateUser(ctx context.Context, token string, req pkgapi.UpdateUserRequest) (*models.User, error)
}

// SessionStore хранилище подписанной сессии
type SessionStore interface {
	Save(ctx context.Context, sess *session.Session) error
	Load(ctx context.Context) (*session.Session, error)
	Destroy(ctx context.Context) error
}

type service struct {
	apiClient APIClient
	sessions  SessionStore
	logger    *slog.Logger
}

// NewService создает сервис авторизации
func NewService(apiClient APIClient, sessions SessionStore, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		sessions:  sessions,
		logger:    logger,
	}
}

// Login выполняет аутентификацию пользователя
func (s *service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validation.Struct(validation.LoginInput{Email: email, Password: password}); err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.TokenRequest{Email: email, Password: password})
	if err != nil {
		// Любой отказ API считается неверными учётными данными;
		// сетевые ошибки и некорректные ответы возвращаются как есть
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
			s.logger.Info("Login rejected", "status", statusErr.StatusCode)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	user, err := api.ToUser(resp.User)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := s.sessions.Save(ctx, &session.Session{Token: resp.TokenKey, User: *user}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Logged in", "user_id", user.ID)
	return user, nil
}

// Logout выполняет выход из системы.
// Токен на стороне API не отзывается: такого эндпоинта нет.
func (s *service) Logout(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("Logged out")
	return nil
}

// Token возвращает токен текущей сессии
func (s *service) Token(ctx context.Context) (string, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// Profile возвращает пользователя текущей сессии
func (s *service) Profile(ctx context.Context) (*models.User, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := sess.User
	return &user, nil
}

// UpdateProfile сливает ввод с пользователем сессии и отправляет PUT /users/{id}
func (s *service) UpdateProfile(ctx context.Context, input validation.ProfileInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	req := pkgapi.UpdateUserRequest{
		ID:             sess.User.ID,
		Email:          sess.User.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Gender:         input.Gender,
		Active:         sess.User.Active,
		EmailConfirmed: sess.User.EmailConfirmed,
	}

	updated, err := s.apiClient.UpdateUser(ctx, sess.Token, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := s.sessions.Save(ctx, &session.Session{Token: sess.Token, User: *updated}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", updated.ID)
	return updated, nil
}
