package auth

import (
	"context"

	"github.com/nlimbasiya24/bookadmin/internal/models"
	"github.com/nlimbasiya24/bookadmin/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service defines authentication and profile operations.
// Every API call in the client starts from Token: no session means no request.
type Service interface {
	// Login обменивает email и пароль на токен и сохраняет сессию
	Login(ctx context.Context, email, password string) (*models.User, error)

	// Logout удаляет сессию; локальный снимок остаётся
	Logout(ctx context.Context) error

	// Token возвращает токен текущей сессии
	Token(ctx context.Context) (string, error)

	// Profile возвращает пользователя из сессии
	Profile(ctx context.Context) (*models.User, error)

	// UpdateProfile отправляет изменения профиля и сохраняет ответ API в сессию
	UpdateProfile(ctx context.Context, input validation.ProfileInput) (*models.User, error)
}
