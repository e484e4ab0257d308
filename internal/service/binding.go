package service

import (
	"context"
	"fmt"
	"sync"

	"AssignReminders/internal/model"
	"AssignReminders/internal/repository"
	"AssignReminders/pkg/errors"
	"AssignReminders/pkg/logger"
	"AssignReminders/pkg/token"
	"AssignReminders/pkg/wechat"

	"go.uber.org/zap"
)

type BindingService struct{}

var (
	bindingService *BindingService
	bindingOnce    sync.Once
)

func Binding() *BindingService {
	bindingOnce.Do(func() {
		bindingService = &BindingService{}
	})
	return bindingService
}

// Bind links the LMS user identified by linkToken to the WeChat account
// behind jsCode. Re-binding the same user replaces the openid and keeps
// the accumulated quota.
func (s *BindingService) Bind(ctx context.Context, linkToken, jsCode string) (*model.WechatBinding, error) {
	userID, err := token.VerifyLinkToken(linkToken)
	if err != nil {
		return nil, fmt.Errorf("%w", errors.LinkTokenInvalid)
	}

	openID, err := wechat.GetClient().RequestOpenID(ctx, jsCode)
	if err != nil {
		logger.Logger.Warn("Failed to exchange js_code",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w", errors.JSCodeInvalid)
	}

	// openid 已绑定到其他用户时拒绝
	existing, err := repository.BindingByOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.UserID != userID {
		return nil, fmt.Errorf("%w", errors.BindingConflict)
	}

	binding, err := repository.UpsertBinding(ctx, userID, openID)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Wechat account linked",
		zap.Int64("user_id", userID))
	return binding, nil
}

// Get returns the user's binding.
func (s *BindingService) Get(ctx context.Context, userID int64) (*model.WechatBinding, error) {
	binding, err := repository.BindingByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if binding == nil {
		return nil, fmt.Errorf("%w", errors.BindingNotFound)
	}
	return binding, nil
}
