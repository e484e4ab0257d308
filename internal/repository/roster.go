package repository

import (
	"context"
	"errors"

	"AssignReminders/internal/model"
	"AssignReminders/storage/database"

	"gorm.io/gorm"
)

// UserByID returns a single user, or nil when the user does not exist.
func UserByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := database.DB().WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsersWithRole returns users holding any of the given roles in a course
// through an active enrollment. Account-level availability (suspended,
// deleted, login-less auth) is not checked here; the resolver applies it.
func UsersWithRole(ctx context.Context, courseID int64, roleIDs []int64) ([]model.User, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var users []model.User
	err := database.DB().WithContext(ctx).Model(&model.User{}).
		Distinct("users.*").
		Joins("JOIN role_assignments ra ON ra.user_id = users.id").
		Joins("JOIN enrollments e ON e.user_id = users.id AND e.course_id = ra.course_id").
		Where("ra.course_id = ?", courseID).
		Where("ra.role_id IN ?", roleIDs).
		Where("e.status = ?", model.EnrollmentActive).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GroupMembers returns the users belonging to a group.
func GroupMembers(ctx context.Context, groupID int64) ([]model.User, error) {
	var users []model.User
	err := database.DB().WithContext(ctx).Model(&model.User{}).
		Joins("JOIN group_members gm ON gm.user_id = users.id").
		Where("gm.group_id = ?", groupID).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
