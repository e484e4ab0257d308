package queue

import (
	"context"

	"AssignReminders/internal/model"
	"AssignReminders/internal/reminder"
)

type queueTransport struct{}

// NewTransport publishes reminders to the delivery queue instead of
// pushing inline. A successful publish counts as a successful delivery
// attempt; the worker handles the actual push and its retries.
func NewTransport() reminder.Transport {
	return queueTransport{}
}

func (queueTransport) Send(ctx context.Context, runID string, event model.CalendarEvent, notification *reminder.Notification) error {
	return PublishReminderDelivery(&model.ReminderDeliveryMessage{
		BatchID:    runID,
		EventID:    event.ID,
		UserID:     notification.To.ID,
		CourseName: notification.CourseName,
		AssignName: notification.AssignName,
		DueAt:      notification.DueAt,
		AheadLabel: notification.AheadLabel,
		Sender:     notification.Sender,
	})
}
