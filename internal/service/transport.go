package service

import (
	"context"

	"AssignReminders/internal/model"
	"AssignReminders/internal/reminder"
)

type directTransport struct{}

// NewDirectTransport delivers reminders inline, in the scheduler
// process itself.
func NewDirectTransport() reminder.Transport {
	return directTransport{}
}

func (directTransport) Send(ctx context.Context, runID string, event model.CalendarEvent, notification *reminder.Notification) error {
	return Delivery().Deliver(ctx, notification.To.ID, DeliveryContent{
		CourseName: notification.CourseName,
		AssignName: notification.AssignName,
		DueAt:      notification.DueAt,
		AheadLabel: notification.AheadLabel,
		Sender:     notification.Sender,
	})
}
