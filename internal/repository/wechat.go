package repository

import (
	"context"
	"errors"

	"AssignReminders/internal/model"
	"AssignReminders/storage/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BindingByUserID returns the WeChat binding of a user, or nil when the
// user has never linked an account.
func BindingByUserID(ctx context.Context, userID int64) (*model.WechatBinding, error) {
	var binding model.WechatBinding
	err := database.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		First(&binding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &binding, nil
}

// BindingByOpenID returns the binding holding an openid, or nil.
func BindingByOpenID(ctx context.Context, openID string) (*model.WechatBinding, error) {
	var binding model.WechatBinding
	err := database.DB().WithContext(ctx).
		Where("open_id = ?", openID).
		First(&binding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &binding, nil
}

// UpsertBinding creates the user's binding or replaces its openid when
// the user re-links from a new WeChat account. Quota is preserved on
// re-link.
func UpsertBinding(ctx context.Context, userID int64, openID string) (*model.WechatBinding, error) {
	binding := model.WechatBinding{
		UserID: userID,
		OpenID: openID,
	}
	err := database.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_id", "updated_at"}),
		}).
		Create(&binding).Error
	if err != nil {
		return nil, err
	}
	return BindingByUserID(ctx, userID)
}

// AdjustQuota applies a quota delta to the user's binding and records a
// ledger entry, atomically. It returns the new balance. A deduction that
// would take the balance below zero fails with gorm.ErrRecordNotFound
// wrapped as no rows updated.
func AdjustQuota(ctx context.Context, userID int64, delta int, transactionType, reason string) (int, error) {
	var balance int
	err := database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		db := tx.Model(&model.WechatBinding{}).
			Where("user_id = ?", userID)
		if delta < 0 {
			// 余额不足时不允许扣减
			db = db.Where("remaining_quota >= ?", -delta)
		}
		result := db.Update("remaining_quota", gorm.Expr("remaining_quota + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var binding model.WechatBinding
		if err := tx.Where("user_id = ?", userID).First(&binding).Error; err != nil {
			return err
		}
		balance = binding.RemainingQuota

		entry := model.QuotaTransaction{
			UserID:          userID,
			TransactionType: transactionType,
			Amount:          delta,
			BalanceAfter:    balance,
			Reason:          reason,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// QuotaHistory lists a user's quota ledger entries, newest first.
func QuotaHistory(ctx context.Context, userID int64, limit int) ([]model.QuotaTransaction, error) {
	var entries []model.QuotaTransaction
	err := database.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
