package cache

import (
	"context"
	"time"

	"AssignReminders/storage/redis"
)

// 消费侧幂等标记：同一条投递消息只处理一次
const (
	messagePrefix = "msg"

	messageProcessingTTL = 10 * time.Minute
	messageProcessedTTL  = 24 * time.Hour
)

// TryMarkMessageProcessing claims a message for processing. It returns
// false when another consumer already holds or finished the message.
func TryMarkMessageProcessing(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(messagePrefix, messageID)

	ok, err := redis.Client().SetNX(ctx, key, "processing", messageProcessingTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// MarkMessageProcessed finalizes the claim so redelivered copies are
// dropped for a day.
func MarkMessageProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().Set(ctx, key, "done", messageProcessedTTL).Err()
}

// UnmarkMessage releases the claim after a failed attempt so a requeued
// copy can retry.
func UnmarkMessage(ctx context.Context, messageID string) error {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().Del(ctx, key).Err()
}
