// Package services содержит бизнес-логику для управления заданиями и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/homeworkhub/assignment-tracker/internal/models"
)

// DueDateLayout — формат даты сдачи задания в запросах API.
const DueDateLayout = "2006-01-02"

var (
	// ErrDueDateInPast возвращается, когда срок сдачи раньше текущей даты.
	ErrDueDateInPast = errors.New("due date must not be earlier than today")
	// ErrInvalidDueDate возвращается, когда срок сдачи не соответствует формату.
	ErrInvalidDueDate = errors.New("invalid due date format")
)

// AssignmentRepository определяет методы для работы с заданиями в хранилище.
type AssignmentRepository interface {
	// CreateAssignment добавляет новое задание и возвращает его ID.
	CreateAssignment(ctx context.Context, a models.Assignment) (string, error)
	// ReadAssignment возвращает задание по ID и UID владельца.
	ReadAssignment(ctx context.Context, id, ownerUID string) (*models.Assignment, error)
	// ListAssignments возвращает список заданий пользователя с фильтрами и пагинацией.
	ListAssignments(ctx context.Context, ownerUID string, filter models.ListFilter) ([]*models.Assignment, error)
	// UpdateAssignment обновляет переданные поля задания и возвращает обновлённую запись.
	UpdateAssignment(ctx context.Context, id, ownerUID string, patch models.AssignmentPatch) (*models.Assignment, error)
	// RemoveAssignment удаляет задание по ID и UID владельца.
	RemoveAssignment(ctx context.Context, id, ownerUID string) error
	// CountStats подсчитывает агрегированные показатели по заданиям пользователя.
	CountStats(ctx context.Context, ownerUID string) (*models.Stats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// AssignmentService реализует бизнес-логику работы с заданиями, включая
// кеширование одиночных чтений. Владелец всегда берётся из аутентифицированного
// запроса и не может быть задан клиентом.
type AssignmentService struct {
	repo  AssignmentRepository
	cache Cache
	log   *slog.Logger
}

// NewAssignmentService создает новый экземпляр AssignmentService.
func NewAssignmentService(repo AssignmentRepository, cache Cache, log *slog.Logger) *AssignmentService {
	return &AssignmentService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Ключ кеша включает UID владельца: запись никогда не отдается
// по чужому токену, даже при совпадении ID.
func cacheKey(ownerUID, id string) string {
	return fmt.Sprintf("assignment:%s:%s", ownerUID, id)
}

// Create создает новое задание для пользователя и возвращает сохранённую запись.
// Срок сдачи не может быть раньше текущей даты. Отсутствующие приоритет
// и статус заполняются значениями по умолчанию.
func (s *AssignmentService) Create(ctx context.Context, ownerUID string, req models.DummyAssignment) (*models.Assignment, error) {
	dueDate, err := time.Parse(DueDateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDueDate, req.DueDate)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if dueDate.Before(today) {
		return nil, ErrDueDateInPast
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	now := time.Now().UTC()
	a := models.Assignment{
		ID:          uuid.New().String(),
		OwnerUID:    ownerUID,
		Title:       req.Title,
		Course:      req.Course,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      status,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.CreateAssignment(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id

	s.log.Info("created new assignment", slog.String("id", id))

	key := cacheKey(ownerUID, id)
	if err := s.cache.Set(key, a, time.Hour); err != nil {
		s.log.Warn("failed to cache assignment", slog.String("key", key), slog.Any("err", err))
	}

	return &a, nil
}

// Read возвращает задание по ID, используя кеш или репозиторий.
func (s *AssignmentService) Read(ctx context.Context, ownerUID, id string) (*models.Assignment, error) {
	var result *models.Assignment
	key := cacheKey(ownerUID, id)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadAssignment(ctx, id, ownerUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает список заданий пользователя. Пустой список — корректный результат.
func (s *AssignmentService) List(ctx context.Context, ownerUID string, filter models.ListFilter) ([]*models.Assignment, error) {
	entries, err := s.repo.ListAssignments(ctx, ownerUID, filter)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Update применяет частичное обновление к заданию пользователя
// и возвращает обновлённую запись. Обновление чужого задания
// неотличимо от обновления несуществующего.
func (s *AssignmentService) Update(ctx context.Context, ownerUID, id string, req models.UpdateAssignment) (*models.Assignment, error) {
	patch := models.AssignmentPatch{
		Title:       req.Title,
		Course:      req.Course,
		Priority:    req.Priority,
		Status:      req.Status,
		Description: req.Description,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(DueDateLayout, *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDueDate, *req.DueDate)
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if dueDate.Before(today) {
			return nil, ErrDueDateInPast
		}
		patch.DueDate = &dueDate
	}

	result, err := s.repo.UpdateAssignment(ctx, id, ownerUID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated assignment in storage", slog.String("id", id))

	key := cacheKey(ownerUID, id)
	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache assignment", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// ToggleStatus переключает статус задания: выполненное возвращается в pending,
// любое другое становится completed. Реализовано поверх Update.
func (s *AssignmentService) ToggleStatus(ctx context.Context, ownerUID, id string) (*models.Assignment, error) {
	current, err := s.repo.ReadAssignment(ctx, id, ownerUID)
	if err != nil {
		return nil, err
	}

	newStatus := models.StatusCompleted
	if current.Status == models.StatusCompleted {
		newStatus = models.StatusPending
	}
	return s.Update(ctx, ownerUID, id, models.UpdateAssignment{Status: &newStatus})
}

// Remove удаляет задание по ID и инвалидирует кеш.
func (s *AssignmentService) Remove(ctx context.Context, ownerUID, id string) error {
	key := cacheKey(ownerUID, id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), slog.Any("err", err))
	}

	return s.repo.RemoveAssignment(ctx, id, ownerUID)
}

// Stats возвращает агрегированные показатели по заданиям пользователя.
func (s *AssignmentService) Stats(ctx context.Context, ownerUID string) (*models.Stats, error) {
	return s.repo.CountStats(ctx, ownerUID)
}
