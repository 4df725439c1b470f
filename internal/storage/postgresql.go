// Package storage реализует хранилище данных на основе PostgreSQL
// для управления заданиями и пользователями. Предоставляет методы
// создания, чтения, обновления, удаления и агрегирования записей,
// а также работу с пользователями.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Обработчики HTTP сопоставляют их со статусами
// ответов через errors.Is.
var (
	// ErrUserNotFound возвращается, когда пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken возвращается при попытке зарегистрировать занятый email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAssignmentNotFound возвращается, когда задание не найдено
	// или принадлежит другому пользователю.
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с заданиями и пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'assignments'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table assignments missing or query error: %w", err)
	}
	return nil
}
