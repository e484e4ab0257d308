package repository

import (
	"context"

	"AssignReminders/internal/model"
	"AssignReminders/storage/database"
)

// UpcomingDueEvents returns candidate events for one scan window.
//
// An event is a candidate when, for at least one offset (in seconds),
// its start time shifted back by that offset falls inside [start, end],
// and the start time itself is still after the window end. Due dates
// already inside or before the window are overdue and never match.
func UpcomingDueEvents(ctx context.Context, start, end int64, offsets []int64, moduleName, eventType string, onlyVisible bool) ([]model.CalendarEvent, error) {
	if len(offsets) == 0 {
		return nil, nil
	}

	tx := database.DB().WithContext(ctx)

	// 每个提前量一个区间条件，OR 连接
	ahead := tx.Where("time_start - ? BETWEEN ? AND ?", offsets[0], start, end)
	for _, offset := range offsets[1:] {
		ahead = ahead.Or("time_start - ? BETWEEN ? AND ?", offset, start, end)
	}

	db := tx.Model(&model.CalendarEvent{}).
		Where("module_name = ? AND event_type = ?", moduleName, eventType).
		Where("time_start > ?", end).
		Where(ahead)

	if onlyVisible {
		db = db.Where("visible = ?", true)
	}

	var events []model.CalendarEvent
	if err := db.Order("time_start ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
