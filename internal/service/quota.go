package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"AssignReminders/internal/model"
	"AssignReminders/internal/repository"
	"AssignReminders/pkg/errors"
	"AssignReminders/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuotaService struct{}

var (
	quotaService *QuotaService
	quotaOnce    sync.Once
)

func Quota() *QuotaService {
	quotaOnce.Do(func() {
		quotaService = &QuotaService{}
	})
	return quotaService
}

// GrantSubscribe credits one push quota after the user authorized a
// one-time subscribe message in the mini program.
func (s *QuotaService) GrantSubscribe(ctx context.Context, userID int64) (int, error) {
	balance, err := repository.AdjustQuota(ctx, userID, 1, model.QuotaTransactionGrant, "subscribe")
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w", errors.BindingNotFound)
	}
	if err != nil {
		return 0, err
	}

	logger.Logger.Info("Subscribe quota granted",
		zap.Int64("user_id", userID),
		zap.Int("balance", balance))
	return balance, nil
}

// DeductForSend consumes one quota before a push. The caller must have
// verified the binding exists; a failure here means the balance is zero.
func (s *QuotaService) DeductForSend(ctx context.Context, userID int64) (int, error) {
	balance, err := repository.AdjustQuota(ctx, userID, -1, model.QuotaTransactionDeduct, "reminder_send")
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w", errors.QuotaInsufficient)
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// History lists the user's recent quota ledger entries.
func (s *QuotaService) History(ctx context.Context, userID int64, limit int) ([]model.QuotaTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return repository.QuotaHistory(ctx, userID, limit)
}
