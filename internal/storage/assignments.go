package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/homeworkhub/assignment-tracker/internal/models"
)

// CreateAssignment вставляет новую запись задания и возвращает её ID.
func (s *Storage) CreateAssignment(ctx context.Context, a models.Assignment) (string, error) {
	const op = "storage.CreateAssignment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO assignments (id, owner_uid, title, course, due_date,
			      priority, status, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		a.ID, a.OwnerUID, a.Title, a.Course, a.DueDate, a.Priority, a.Status,
		a.Description, a.CreatedAt, a.UpdatedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadAssignment возвращает задание по ID и UID владельца.
// Чужое или несуществующее задание даёт ErrAssignmentNotFound —
// различать эти случаи нельзя, чтобы не раскрывать чужие ID.
func (s *Storage) ReadAssignment(ctx context.Context, id, ownerUID string) (*models.Assignment, error) {
	const op = "storage.ReadAssignment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, course, due_date, priority, status,
			      description, created_at, updated_at
			  FROM assignments
			  WHERE id = $1 AND owner_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, ownerUID)

	var result models.Assignment
	if err := row.Scan(&result.ID, &result.OwnerUID, &result.Title, &result.Course,
		&result.DueDate, &result.Priority, &result.Status, &result.Description,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrAssignmentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListAssignments возвращает список заданий пользователя с учётом фильтров
// и пагинации. Пустые значения фильтра не ограничивают выборку.
func (s *Storage) ListAssignments(ctx context.Context, ownerUID string, filter models.ListFilter) ([]*models.Assignment, error) {
	const op = "storage.ListAssignments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, course, due_date, priority, status,
			      description, created_at, updated_at
			  FROM assignments
			  WHERE owner_uid = $1
			    AND ($2 = '' OR status = $2)
			    AND ($3 = '' OR priority = $3)
			  ORDER BY due_date, id
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID, filter.Status, filter.Priority,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Assignment
	for rows.Next() {
		var item models.Assignment
		if err := rows.Scan(&item.ID, &item.OwnerUID, &item.Title, &item.Course,
			&item.DueDate, &item.Priority, &item.Status, &item.Description,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAssignment обновляет переданные поля задания по ID и UID владельца
// и возвращает обновлённую запись. nil-поля patch не изменяются.
func (s *Storage) UpdateAssignment(ctx context.Context, id, ownerUID string, patch models.AssignmentPatch) (*models.Assignment, error) {
	const op = "storage.UpdateAssignment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE assignments
			  SET title = COALESCE($1, title),
			      course = COALESCE($2, course),
			      due_date = COALESCE($3, due_date),
			      priority = COALESCE($4, priority),
			      status = COALESCE($5, status),
			      description = COALESCE($6, description),
			      updated_at = NOW()
			  WHERE id = $7 AND owner_uid = $8
			  RETURNING id, owner_uid, title, course, due_date, priority, status,
			      description, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		patch.Title, patch.Course, patch.DueDate, patch.Priority, patch.Status,
		patch.Description, id, ownerUID)

	var result models.Assignment
	if err := row.Scan(&result.ID, &result.OwnerUID, &result.Title, &result.Course,
		&result.DueDate, &result.Priority, &result.Status, &result.Description,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrAssignmentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveAssignment удаляет задание по ID и UID владельца.
// Если подходящей записи нет, возвращает ErrAssignmentNotFound.
func (s *Storage) RemoveAssignment(ctx context.Context, id, ownerUID string) error {
	const op = "storage.RemoveAssignment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM assignments WHERE id = $1 AND owner_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, ownerUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrAssignmentNotFound)
	}
	return nil
}

// CountStats подсчитывает агрегированные показатели по заданиям пользователя.
func (s *Storage) CountStats(ctx context.Context, ownerUID string) (*models.Stats, error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*),
			      COUNT(*) FILTER (WHERE status = 'pending'),
			      COUNT(*) FILTER (WHERE status = 'completed'),
			      COUNT(*) FILTER (WHERE priority = 'high'),
			      COUNT(*) FILTER (WHERE due_date < CURRENT_DATE AND status <> 'completed')
			  FROM assignments
			  WHERE owner_uid = $1`
	var stats models.Stats
	row := s.DB.QueryRowContext(ctx, query, ownerUID)
	if err := row.Scan(&stats.Total, &stats.Pending, &stats.Completed,
		&stats.HighPriority, &stats.Overdue); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}

// FindAssignmentsDueTomorrow находит невыполненные задания, срок сдачи
// которых наступает завтра, вместе с контактами владельцев.
func (s *Storage) FindAssignmentsDueTomorrow(ctx context.Context) ([]*models.ReminderInfo, error) {
	const op = "storage.FindAssignmentsDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.email,
			      u.username,
			      a.title,
			      a.course,
			      a.due_date
			  FROM assignments a
			  JOIN users u ON a.owner_uid = u.uid
			  WHERE a.due_date::DATE = CURRENT_DATE + INTERVAL '1 day'
			    AND a.status <> 'completed';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var ri models.ReminderInfo
		if err = rows.Scan(&ri.Email, &ri.Username, &ri.Title, &ri.Course, &ri.DueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
