package service

import (
	"context"
	"fmt"
	"sync"

	"AssignReminders/config"
	"AssignReminders/internal/cache"
	"AssignReminders/internal/model"
	"AssignReminders/internal/repository"
	"AssignReminders/pkg/errors"
	"AssignReminders/pkg/logger"
	"AssignReminders/pkg/metrics"
	"AssignReminders/pkg/wechat"

	"go.uber.org/zap"
)

// DeliveryContent is the rendered content of one reminder push.
type DeliveryContent struct {
	CourseName string
	AssignName string
	DueAt      string
	AheadLabel string
	Sender     string
}

type DeliveryService struct{}

var (
	deliveryService *DeliveryService
	deliveryOnce    sync.Once
)

func Delivery() *DeliveryService {
	deliveryOnce.Do(func() {
		deliveryService = &DeliveryService{}
	})
	return deliveryService
}

// Deliver pushes one reminder to one user over WeChat.
//
// An unavailable account (suspended, deleted, login-less) is reported
// as delivered without any push going out, so a batch of reminders
// never stalls on accounts that can no longer receive anything.
func (s *DeliveryService) Deliver(ctx context.Context, userID int64, content DeliveryContent) error {
	user, err := repository.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("recipient %d not found", userID)
	}
	if user.Suspended || user.Deleted || user.Auth == model.AuthNoLogin {
		// 账号不可用时视为已送达，不实际推送
		logger.Logger.Info("Recipient unavailable, delivery skipped",
			zap.Int64("user_id", userID))
		return nil
	}

	binding, err := repository.BindingByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if binding == nil {
		return fmt.Errorf("%w", errors.BindingNotFound)
	}

	if _, err := Quota().DeductForSend(ctx, userID); err != nil {
		metrics.RecordQuotaInsufficient(ctx)
		return err
	}

	accessToken, err := s.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.WechatUnavailable, err)
	}

	templateID := config.Cfg.WechatDueAssignTemplateID
	if templateID == "" {
		return fmt.Errorf("%w", errors.TemplateNotConfigured)
	}

	data := map[string]string{
		"thing7": content.CourseName,
		"thing9": content.AssignName,
	}
	err = wechat.GetClient().SendSubscribeMessage(ctx, accessToken, binding.OpenID, templateID, data)
	if err != nil {
		// 凭证可能已失效，清缓存让下一次重新获取
		_ = cache.DeleteWechatAccessToken(ctx)
		logger.Logger.Error("Wechat push failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", errors.WechatUnavailable, err)
	}

	logger.Logger.Info("Reminder delivered",
		zap.Int64("user_id", userID),
		zap.String("course", content.CourseName),
		zap.String("ahead", content.AheadLabel))
	return nil
}

// accessToken returns the cached WeChat API credential, fetching and
// caching a fresh one on miss.
func (s *DeliveryService) accessToken(ctx context.Context) (string, error) {
	cached, err := cache.GetWechatAccessToken(ctx)
	if err != nil {
		logger.Logger.Warn("Failed to read access token cache", zap.Error(err))
	}
	if cached != "" {
		return cached, nil
	}

	accessToken, expiresIn, err := wechat.GetClient().RequestAccessToken(ctx)
	if err != nil {
		return "", err
	}
	if err := cache.SetWechatAccessToken(ctx, accessToken, expiresIn); err != nil {
		logger.Logger.Warn("Failed to cache access token", zap.Error(err))
	}
	return accessToken, nil
}
