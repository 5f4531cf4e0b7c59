// Package reminder delivers due reminders. The dispatcher scans the store
// for pending reminders and hands them to a publisher; with no publisher
// configured it degrades to log-only delivery.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"billfold/internal/amqp"
	"billfold/internal/core"
	"billfold/internal/store"
)

// Publisher delivers a due-reminder notification to an external channel.
type Publisher interface {
	PublishReminderDue(ctx context.Context, msg *amqp.ReminderDueMessage) error
}

// Dispatcher scans for due reminders and delivers them.
type Dispatcher struct {
	store     *store.Store
	publisher Publisher // nil = log-only delivery
}

func NewDispatcher(st *store.Store, publisher Publisher) *Dispatcher {
	return &Dispatcher{
		store:     st,
		publisher: publisher,
	}
}

// DispatchDue delivers every pending reminder for the user and marks it
// sent. A reminder that fails to publish stays pending and is retried on the
// next scan.
func (d *Dispatcher) DispatchDue(ctx context.Context, userID int) (int, error) {
	if d.store == nil {
		return 0, fmt.Errorf("dispatcher not properly initialized")
	}

	pending := d.store.PendingReminders(userID)
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "Dispatching due reminders",
		"user_id", userID,
		"pending", len(pending))

	sent := 0
	for _, r := range pending {
		if err := d.deliver(ctx, r); err != nil {
			slog.ErrorContext(ctx, "Failed to deliver reminder, will retry",
				"reminder_id", r.ID,
				"error", err)
			continue
		}

		if _, err := d.store.MarkReminderSent(r.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark reminder sent",
				"reminder_id", r.ID,
				"error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

func (d *Dispatcher) deliver(ctx context.Context, r core.Reminder) error {
	if d.publisher == nil {
		slog.InfoContext(ctx, "Reminder due (no publisher configured)",
			"reminder_id", r.ID,
			"user_id", r.UserID,
			"message", r.Message,
			"priority", r.Priority)
		return nil
	}
	msg := amqp.NewReminderDueMessage(r.ID, r.UserID, r.Message, r.Priority, r.RemindAt)
	return d.publisher.PublishReminderDue(ctx, msg)
}

// Run dispatches on a fixed interval until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, userID int, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := d.DispatchDue(ctx, userID); err != nil {
				slog.ErrorContext(ctx, "Reminder dispatch pass failed", "error", err)
			}
		}
	}
}
