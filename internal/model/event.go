package model

// CalendarEvent mirrors a scheduling event synced from the LMS calendar.
// TimeStart is epoch seconds. GroupID/UserID, when non-zero, narrow the
// audience of the event to a single group or a single user.
type CalendarEvent struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	CourseID   int64  `gorm:"index;not null" json:"course_id"`
	GroupID    int64  `gorm:"default:0" json:"group_id"`
	UserID     int64  `gorm:"default:0" json:"user_id"`
	Instance   int64  `gorm:"index;not null" json:"instance"` // 模块实例 ID（作业 ID）
	ModuleName string `gorm:"size:64;index;not null" json:"module_name"`
	EventType  string `gorm:"size:32;not null" json:"event_type"`
	Name       string `gorm:"size:255;not null" json:"name"`
	TimeStart  int64  `gorm:"index;not null" json:"time_start"`
	Visible    bool   `gorm:"default:true" json:"visible"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
