package reminder

import (
	"fmt"
	"log/slog"

	"billfold/internal/amqp"
	"billfold/internal/metrics"
)

// Notifier is the consume side of the dispatch pipeline: it receives
// published due-reminder notifications and records their delivery. In a
// full deployment this is where a push channel (mail, SMS gateway) would
// hang off; here delivery means a structured log line and a counter.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Handle processes one consumed notification. A nil error acknowledges the
// message; returning an error requeues it.
func (n *Notifier) Handle(msg *amqp.ReminderDueMessage) error {
	if msg == nil {
		return fmt.Errorf("nil reminder notification")
	}

	slog.Info("Reminder notification delivered",
		"reminder_id", msg.ReminderID,
		"user_id", msg.UserID,
		"message", msg.Message,
		"priority", msg.Priority,
		"remind_at", msg.RemindAt)
	metrics.RemindersDelivered.Inc()
	return nil
}
