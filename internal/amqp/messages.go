package amqp

import (
	"encoding/json"
	"time"
)

// ReminderDueMessage notifies downstream consumers that a reminder has come
// due. It carries enough data to render a notification without a store
// lookup.
type ReminderDueMessage struct {
	ReminderID int       `json:"reminderId"`
	UserID     int       `json:"userId"`
	Message    string    `json:"message"`
	Priority   string    `json:"priority"`
	RemindAt   time.Time `json:"remindAt"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewReminderDueMessage builds a notification message for a due reminder.
func NewReminderDueMessage(reminderID, userID int, message, priority string, remindAt time.Time) *ReminderDueMessage {
	return &ReminderDueMessage{
		ReminderID: reminderID,
		UserID:     userID,
		Message:    message,
		Priority:   priority,
		RemindAt:   remindAt,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReminderDueMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReminderDueMessageFromJSON creates a message from JSON bytes
func ReminderDueMessageFromJSON(data []byte) (*ReminderDueMessage, error) {
	var msg ReminderDueMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
