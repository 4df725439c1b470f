// Package services содержит логику планировщика напоминаний о сроках сдачи заданий.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/homeworkhub/assignment-tracker/internal/lib/sl"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	"github.com/homeworkhub/assignment-tracker/internal/rabbitmq"
)

// AssignmentRepository определяет выборку заданий для напоминаний.
type AssignmentRepository interface {
	FindAssignmentsDueTomorrow(ctx context.Context) ([]*models.ReminderInfo, error)
}

// SchedulerService периодически ищет задания со сроком сдачи завтра
// и публикует напоминания в очередь.
type SchedulerService struct {
	repo AssignmentRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo AssignmentRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindAssignmentsDueTomorrow раз в 12 часов выбирает задания со сроком
// сдачи завтра и публикует напоминание по каждому. Останавливается
// по отмене контекста.
func (s *SchedulerService) FindAssignmentsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFindAssignmentsDueTomorrow(ctx, channel)
		}
	}
}

func (s *SchedulerService) runFindAssignmentsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find assignments due tomorrow")
	reminders, err := s.repo.FindAssignmentsDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find assignments", sl.Err(err))
		return
	}
	for _, reminder := range reminders {
		err = rabbitmq.PublishReminder(channel, rabbitmq.DueTomorrowRoutingKey, reminder)
		if err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
}
