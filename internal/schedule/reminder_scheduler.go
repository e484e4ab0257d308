package schedule

// 提醒调度器：周期扫描日历事件，向未提交作业的用户推送截止提醒

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"AssignReminders/config"
	"AssignReminders/internal/cache"
	"AssignReminders/internal/queue"
	"AssignReminders/internal/reminder"
	"AssignReminders/internal/service"
	"AssignReminders/pkg/logger"
)

const runLockKey = "reminder_run"

var (
	schedulerOnce sync.Once
	schedulerInst *ReminderScheduler
)

type ReminderScheduler struct {
	logger      *zap.Logger
	dispatcher  *reminder.Dispatcher
	jobRunning  bool
	jobMu       sync.Mutex
	lastRunTime time.Time
}

func GetScheduler() *ReminderScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &ReminderScheduler{
			logger:     logger.Logger,
			dispatcher: buildDispatcher(),
		}
	})
	return schedulerInst
}

// buildDispatcher wires the dispatcher from configuration. The delivery
// transport is either the inline WeChat push or the RabbitMQ queue.
func buildDispatcher() *reminder.Dispatcher {
	cfg := &config.Cfg

	loc, err := time.LoadLocation(cfg.ReminderTimezone)
	if err != nil {
		logger.Logger.Warn("Invalid reminder timezone, falling back to local",
			zap.String("timezone", cfg.ReminderTimezone),
			zap.Error(err))
		loc = time.Local
	}

	var transport reminder.Transport
	if cfg.DeliveryChannel == config.DeliveryChannelQueue {
		transport = queue.NewTransport()
	} else {
		transport = service.NewDirectTransport()
	}

	coursework := reminder.NewDBCoursework()

	return reminder.NewDispatcher(reminder.Options{
		Events:     reminder.NewDBEventSource(cfg.ReminderModuleName, cfg.ReminderEventType, cfg.SendOnlyVisible()),
		Watermarks: reminder.NewDBWatermarkStore(),
		Content:    coursework,
		Resolver:   reminder.NewResolver(reminder.NewDBRoster(), coursework, cfg.SubmitterRoleIDs),
		Transport:  transport,
		Leads:      reminder.EnabledLeadTimes(cfg),
		Template: reminder.TemplateSpec{
			Sender:     cfg.ReminderSenderName,
			DateFormat: cfg.ReminderDateFormat,
			Location:   loc,
		},
		SendTimeout:    cfg.SendTimeout,
		FirstRunCutoff: time.Duration(cfg.FirstRunCutoffDays) * 24 * time.Hour,
	})
}

// RunOnce executes a single scan pass, guarded against overlap both in
// process and across instances.
func (s *ReminderScheduler) RunOnce(ctx context.Context) error {
	if !config.Cfg.ReminderEnabled {
		s.logger.Debug("Reminders disabled, skipping run")
		return nil
	}

	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Reminder run already in progress, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	// 跨实例互斥
	locked, err := cache.TryLock(ctx, runLockKey, config.Cfg.ReminderRunLockTTL)
	if err != nil {
		s.logger.Error("Failed to acquire run lock", zap.Error(err))
		return err
	}
	if !locked {
		s.logger.Info("Another instance holds the run lock, skipping")
		return nil
	}
	defer func() {
		if err := cache.Unlock(context.WithoutCancel(ctx), runLockKey); err != nil {
			s.logger.Warn("Failed to release run lock", zap.Error(err))
		}
	}()

	s.lastRunTime = time.Now()

	// 单轮运行时间不超过锁的 TTL，避免锁过期后与下一轮并发
	runCtx, cancelRun := context.WithTimeout(ctx, config.Cfg.ReminderRunLockTTL)
	defer cancelRun()

	out, err := s.dispatcher.Run(runCtx)
	if err != nil {
		s.logger.Error("Reminder run failed", zap.Error(err))
		return err
	}

	s.logger.Info("Reminder run completed",
		zap.String("run_id", out.RunID),
		zap.Int("sent", out.RemindersSent),
		zap.Int("failed", out.RemindersFailed),
		zap.Bool("committed", out.Committed),
		zap.Duration("elapsed", time.Since(s.lastRunTime)))
	return nil
}

// Start loops RunOnce on the configured interval until ctx is done. The
// first pass runs immediately.
func (s *ReminderScheduler) Start(ctx context.Context) {
	interval := config.Cfg.ScanInterval

	s.logger.Info("Reminder scheduler started",
		zap.Duration("interval", interval))

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Initial reminder run failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("Reminder run failed", zap.Error(err))
			}
		}
	}
}
