package repository

import (
	"context"
	"errors"

	"AssignReminders/internal/model"
	"AssignReminders/storage/database"

	"gorm.io/gorm"
)

// Coursework bundles the course and assignment an event points at.
type Coursework struct {
	Course     model.Course
	Assignment model.Assignment
}

// CourseworkForEvent resolves the course and assignment instance behind
// an event. found is false when either record is missing, which callers
// treat as a stale event rather than an error.
func CourseworkForEvent(ctx context.Context, courseID, instance int64) (*Coursework, bool, error) {
	db := database.DB().WithContext(ctx)

	var course model.Course
	err := db.Where("id = ?", courseID).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var assignment model.Assignment
	err = db.Where("id = ? AND course_id = ?", instance, courseID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &Coursework{Course: course, Assignment: assignment}, true, nil
}

// CanSubmit reports whether a user is entitled to submit work in the
// course, approximated by holding an active enrollment.
func CanSubmit(ctx context.Context, courseID, userID int64) (bool, error) {
	var count int64
	err := database.DB().WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ? AND status = ?", courseID, userID, model.EnrollmentActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasSubmitted reports whether a user already has a completed submission
// for the assignment.
func HasSubmitted(ctx context.Context, assignmentID, userID int64) (bool, error) {
	var count int64
	err := database.DB().WithContext(ctx).Model(&model.Submission{}).
		Where("assignment_id = ? AND user_id = ? AND status = ?", assignmentID, userID, model.SubmissionStatusSubmitted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
