package api

// TokenRequest представляет запрос на получение токена (POST /token)
type TokenRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	User     *User  `json:"user"`      // профиль пользователя
	TokenKey string `json:"token_key"` // bearer token для заголовка Authorization
}

// User представляет пользователя в ответах API
type User struct {
	ID             *int64 `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Gender         string `json:"gender"`
	Active         bool   `json:"active"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// UpdateUserRequest представляет тело PUT /users/{id}
type UpdateUserRequest struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Gender         string `json:"gender"`
	ID             int64  `json:"id"`
	Active         bool   `json:"active"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
	Detail  string `json:"detail,omitempty"`  // детали (часть эндпоинтов отвечает так)
}
