package queue

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"AssignReminders/internal/cache"
	"AssignReminders/internal/model"
	"AssignReminders/internal/service"
	"AssignReminders/pkg/errors"
	"AssignReminders/pkg/logger"
	"AssignReminders/storage/mq"

	"go.uber.org/zap"
)

// StartReminderDeliveryConsumer consumes the delivery queue until the
// channel closes. Intended to run in the worker binary.
func StartReminderDeliveryConsumer() error {
	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ReminderDeliveryQueue,
		ConsumerTag:   "reminder-worker",
		PrefetchCount: 8,
		Handler:       handleDeliveryMessage,
	})
}

// handleDeliveryMessage processes one queued reminder. Returning a
// SkipMessageError acknowledges and drops the message; any other error
// requeues it.
func handleDeliveryMessage(body []byte) error {
	ctx := context.Background()

	var msg model.ReminderDeliveryMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed delivery message: %v", err)}
	}

	// 幂等：重复投递的消息直接跳过
	claimed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID)
	if err != nil {
		return err
	}
	if !claimed {
		return &errors.SkipMessageError{Reason: "message already processed: " + msg.MessageID}
	}

	err = service.Delivery().Deliver(ctx, msg.UserID, service.DeliveryContent{
		CourseName: msg.CourseName,
		AssignName: msg.AssignName,
		DueAt:      msg.DueAt,
		AheadLabel: msg.AheadLabel,
		Sender:     msg.Sender,
	})
	if err != nil {
		// 配额不足或未绑定不会因重试而好转，跳过；其余错误重新入队
		if stderrors.Is(err, errors.QuotaInsufficient) || stderrors.Is(err, errors.BindingNotFound) {
			logger.Logger.Warn("Reminder dropped",
				zap.String("message_id", msg.MessageID),
				zap.Int64("user_id", msg.UserID),
				zap.Error(err))
			_ = cache.MarkMessageProcessed(ctx, msg.MessageID)
			return &errors.SkipMessageError{Reason: err.Error()}
		}

		if unmarkErr := cache.UnmarkMessage(ctx, msg.MessageID); unmarkErr != nil {
			logger.Logger.Error("Failed to release message claim",
				zap.String("message_id", msg.MessageID),
				zap.Error(unmarkErr))
		}
		return err
	}

	return cache.MarkMessageProcessed(ctx, msg.MessageID)
}
