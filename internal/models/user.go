// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}

// PublicUser — представление пользователя для ответов API,
// без хэша пароля и служебных полей.
type PublicUser struct {
	UID      string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public возвращает безопасное для клиента представление пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
	}
}
