// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homeworkhub/assignment-tracker/internal/lib/jwt"
	"github.com/homeworkhub/assignment-tracker/internal/lib/password"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

// Ошибки аутентификации. Обработчики HTTP сопоставляют их со статусом 401.
var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken возвращается при нечитаемом или просроченном токене.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnknownSubject возвращается, когда токен корректен,
	// но пользователь из него больше не существует.
	ErrUnknownSubject = errors.New("token subject does not exist")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу выдает токен.
// Занятый email приводит к storage.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (string, *models.User, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login проверяет пароль пользователя по email и генерирует JWT.
// Несуществующий email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает пользователя, которому он выдан.
// Помимо подписи и срока жизни проверяется, что субъект токена
// всё ещё существует в хранилище.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnknownSubject)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
