// Package sender содержит приложение отправки почтовых напоминаний.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/homeworkhub/assignment-tracker/internal/config"
	"github.com/homeworkhub/assignment-tracker/internal/lib/smtp"
	"github.com/homeworkhub/assignment-tracker/internal/rabbitmq"
	senderservice "github.com/homeworkhub/assignment-tracker/internal/services/reminder-sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.DueTomorrowQueue, a.senderService.SendReminderDueTomorrow)
	if err != nil {
		a.logger.Error("failed to start reminder queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
