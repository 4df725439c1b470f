// Package models содержит доменные структуры, описывающие учебное задание,
// а также вспомогательные типы для работы с данными из внешних источников
// (например, JSON-запросы).
package models

import "time"

// Допустимые значения приоритета задания.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Допустимые значения статуса задания. Переходы между статусами свободные:
// выполненное задание можно вернуть в pending.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Assignment представляет собой основную модель учебного задания,
// используемую в бизнес-логике и хранилище. Задание всегда принадлежит
// ровно одному пользователю (OwnerUID), владелец назначается при создании
// и не редактируется.
type Assignment struct {
	ID          string    `json:"id"`          // Уникальный идентификатор задания
	OwnerUID    string    `json:"owner_id"`    // UID пользователя-владельца
	Title       string    `json:"title"`       // Название задания
	Course      string    `json:"course"`      // Название курса
	DueDate     time.Time `json:"due_date"`    // Срок сдачи
	Priority    string    `json:"priority"`    // Приоритет: low, medium, high
	Status      string    `json:"status"`      // Статус: pending, in-progress, completed
	Description string    `json:"description"` // Описание (опционально)
	CreatedAt   time.Time `json:"created_at"`  // Дата создания
	UpdatedAt   time.Time `json:"updated_at"`  // Дата последнего изменения
}

// DummyAssignment используется для приёма данных из JSON-запроса на создание,
// прежде чем конвертировать их в Assignment. Дата приходит строкой,
// чтобы её можно было валидировать и парсить вручную.
type DummyAssignment struct {
	Title       string `json:"title" validate:"required"`                             // Название задания
	Course      string `json:"course" validate:"required"`                            // Название курса
	DueDate     string `json:"due_date" validate:"required"`                          // Срок сдачи в формате 2006-01-02, парсится в бизнес-логике
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`   // Приоритет, по умолчанию medium
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"` // Статус, по умолчанию pending
	Description string `json:"description"`                                           // Описание
}

// UpdateAssignment используется для приёма частичного обновления:
// nil-поле означает "не менять". Владелец и идентификатор не обновляемы.
type UpdateAssignment struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Course      *string `json:"course" validate:"omitempty,min=1"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Description *string `json:"description"`
}

// AssignmentPatch — частичное обновление на уровне хранилища:
// nil-поле не изменяет колонку. Получается из UpdateAssignment
// после парсинга даты в бизнес-логике.
type AssignmentPatch struct {
	Title       *string
	Course      *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
	Description *string
}

// ListFilter описывает необязательные фильтры выборки заданий пользователя.
type ListFilter struct {
	Status   string // Пустая строка — без фильтра по статусу
	Priority string // Пустая строка — без фильтра по приоритету
	Limit    int
	Offset   int
}

// Stats содержит агрегированные показатели по заданиям пользователя.
type Stats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Completed    int `json:"completed"`
	HighPriority int `json:"high_priority"`
	Overdue      int `json:"overdue"` // Просроченные и не выполненные
}

// ReminderInfo — данные для уведомления о задании, срок сдачи которого
// наступает завтра. Публикуется планировщиком в очередь и потребляется
// сервисом отправки писем.
type ReminderInfo struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Course   string    `json:"course"`
	DueDate  time.Time `json:"due_date"`
}
