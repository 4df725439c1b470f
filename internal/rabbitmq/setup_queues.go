package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для привязки к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

const (
	// ReminderExchange — direct-обменник всех напоминаний.
	ReminderExchange = "reminders"
	// DueTomorrowQueue — очередь напоминаний о заданиях со сроком сдачи завтра.
	DueTomorrowQueue = "reminder.due_tomorrow"
	// DueTomorrowRoutingKey — ключ маршрутизации напоминаний "срок завтра".
	DueTomorrowRoutingKey = "due_tomorrow"
)

// GetReminderQueues возвращает конфигурацию очередей напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: DueTomorrowQueue, RoutingKey: DueTomorrowRoutingKey},
	}
}
