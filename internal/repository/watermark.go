package repository

import (
	"context"
	"errors"

	"AssignReminders/internal/model"
	"AssignReminders/storage/database"

	"gorm.io/gorm"
)

// LatestWatermark returns the end time of the most recently committed
// scan window. ok is false when no run has ever been committed.
func LatestWatermark(ctx context.Context) (int64, bool, error) {
	var entry model.ReminderLog
	err := database.DB().WithContext(ctx).
		Order("time DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return entry.Time, true, nil
}

// CommitWatermark appends a watermark entry. The log is append-only;
// existing rows are never updated or removed.
func CommitWatermark(ctx context.Context, t int64, logType string) error {
	entry := model.ReminderLog{
		Time: t,
		Type: logType,
	}
	return database.DB().WithContext(ctx).Create(&entry).Error
}
