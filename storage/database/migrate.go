package database

import (
	"AssignReminders/internal/model"
	"AssignReminders/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	// 迁移所有模型
	err := db.AutoMigrate(
		&model.CalendarEvent{},
		&model.Course{},
		&model.Assignment{},
		&model.Submission{},
		&model.User{},
		&model.Enrollment{},
		&model.RoleAssignment{},
		&model.Group{},
		&model.GroupMember{},
		&model.ReminderLog{},
		&model.WechatBinding{},
		&model.QuotaTransaction{},
	)

	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
