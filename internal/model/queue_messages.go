package model

// ReminderDeliveryMessage is the payload published to the delivery queue
// when the dispatcher runs in queue mode. It carries the rendered
// notification content so the worker never re-reads event state.
type ReminderDeliveryMessage struct {
	MessageID string `json:"message_id"`
	BatchID   string `json:"batch_id"`
	EventID   int64  `json:"event_id"`
	UserID    int64  `json:"user_id"`

	CourseName string `json:"course_name"`
	AssignName string `json:"assign_name"`
	DueAt      string `json:"due_at"`
	AheadLabel string `json:"ahead_label"`
	Sender     string `json:"sender"`

	PublishedAt int64 `json:"published_at"`
}
