package cache

import (
	"context"
	"time"

	"AssignReminders/storage/redis"

	goredis "github.com/redis/go-redis/v9"
)

const (
	tokenPrefix = "token"
)

// SetWechatAccessToken 缓存微信接口调用凭证
// Key: asgnrmd:token:wechat
// TTL 比微信返回的有效期提前 5 分钟过期，避免使用临期凭证
func SetWechatAccessToken(ctx context.Context, token string, expiresIn time.Duration) error {
	key := redis.Key(tokenPrefix, "wechat")

	ttl := expiresIn - 5*time.Minute
	if ttl <= 0 {
		ttl = expiresIn
	}

	return redis.Client().Set(ctx, key, token, ttl).Err()
}

// GetWechatAccessToken 获取缓存的调用凭证，未命中时返回空串
func GetWechatAccessToken(ctx context.Context) (string, error) {
	key := redis.Key(tokenPrefix, "wechat")

	token, err := redis.Client().Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// DeleteWechatAccessToken 清除缓存（凭证被微信侧判定失效时调用）
func DeleteWechatAccessToken(ctx context.Context) error {
	key := redis.Key(tokenPrefix, "wechat")
	return redis.Client().Del(ctx, key).Err()
}
