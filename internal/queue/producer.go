package queue

import (
	"fmt"
	"time"

	"AssignReminders/internal/model"
	"AssignReminders/pkg/snowflake"
	"AssignReminders/storage/mq"
)

// PublishReminderDelivery hands one reminder to the delivery queue.
// The message id is assigned here so consumers can deduplicate
// redelivered copies.
func PublishReminderDelivery(msg *model.ReminderDeliveryMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to assign message id: %w", err)
		}
		msg.MessageID = fmt.Sprintf("%d", id)
	}
	msg.PublishedAt = time.Now().Unix()

	return mq.PublishMessage(mq.ReminderExchange, mq.ReminderDeliveryKey, msg)
}
