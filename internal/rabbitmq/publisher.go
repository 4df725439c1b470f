package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/homeworkhub/assignment-tracker/internal/models"
)

// PublishReminder публикует напоминание о задании в обменник reminders
// с переданным ключом маршрутизации. Сообщение сериализуется в JSON
// и помечается persistent, чтобы пережить перезапуск брокера.
func PublishReminder(ch *amqp.Channel, routingKey string, reminder *models.ReminderInfo) error {
	const op = "rabbitmq.PublishReminder"

	body, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		ReminderExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
