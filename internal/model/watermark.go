package model

import "time"

// ReminderLog is the append-only watermark log of the reminder scanner.
// Each row records the end of a processed window. Time is epoch seconds;
// the next run scans (Time+1, now].
type ReminderLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Time      int64     `gorm:"index;not null" json:"time"`
	Type      string    `gorm:"size:32;not null" json:"type"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ReminderLog) TableName() string {
	return "reminder_log"
}

const (
	// 窗口内没有匹配事件
	ReminderLogNoEvents = "no_events"
	// 窗口内至少一条提醒发送成功
	ReminderLogSent = "sent"
)
