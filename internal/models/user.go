package models

// User представляет профиль пользователя, вернувшийся при логине
type User struct {
	Email          string `json:"email"`           // Email адрес, использованный для входа
	FirstName      string `json:"first_name"`      // FirstName имя
	LastName       string `json:"last_name"`       // LastName фамилия
	Gender         string `json:"gender"`          // Gender male, female или other
	ID             int64  `json:"id"`              // ID идентификатор пользователя в API
	Active         bool   `json:"active"`          // Active учетная запись активна
	EmailConfirmed bool   `json:"email_confirmed"` // EmailConfirmed email подтверждён
}
