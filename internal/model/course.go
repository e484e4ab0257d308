package model

import "time"

// Course mirrors the LMS course table.
type Course struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255;not null" json:"full_name"`
	Visible  bool   `gorm:"default:true" json:"visible"`
}

func (Course) TableName() string {
	return "courses"
}

// Assignment mirrors the LMS assignment activity table.
type Assignment struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	CourseID int64  `gorm:"index;not null" json:"course_id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	DueDate  int64  `gorm:"not null" json:"due_date"`
	// 截止后不允许提交时为 true
	CutoffDate int64 `gorm:"default:0" json:"cutoff_date"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// Submission records a user's submitted work for an assignment.
// Only rows with Status "submitted" count as a completed submission.
type Submission struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AssignmentID int64     `gorm:"index:idx_submission_assign_user;not null" json:"assignment_id"`
	UserID       int64     `gorm:"index:idx_submission_assign_user;not null" json:"user_id"`
	Status       string    `gorm:"size:32;not null;default:'new'" json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

const SubmissionStatusSubmitted = "submitted"
