package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"AssignReminders/config"
	"AssignReminders/internal/queue"
	"AssignReminders/pkg/logger"
	"AssignReminders/pkg/metrics"
	"AssignReminders/pkg/snowflake"
	"AssignReminders/pkg/wechat"
	"AssignReminders/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := wechat.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize wechat client", zap.Error(err))
		logger.Logger.Info("Wechat client will run in mock mode, pushes will not reach users")
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize metrics", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 消费投递队列，阻塞直到通道关闭或收到退出信号
	errCh := make(chan error, 1)
	go func() {
		errCh <- queue.StartReminderDeliveryConsumer()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Logger.Error("Delivery consumer stopped", zap.Error(err))
		}
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
