package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"AssignReminders/config"
	"AssignReminders/internal/schedule"
	"AssignReminders/pkg/logger"
	"AssignReminders/pkg/metrics"
	"AssignReminders/pkg/otel"
	"AssignReminders/pkg/snowflake"
	"AssignReminders/pkg/wechat"
	"AssignReminders/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	// direct 模式下调度器自己推送，需要微信客户端
	if err := wechat.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize wechat client", zap.Error(err))
		logger.Logger.Info("Wechat client will run in mock mode, pushes will not reach users")
	}

	if config.Cfg.TracingEnabled {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:  config.Cfg.ServiceName + "-scheduler",
			Environment:  config.Cfg.Environment,
			OTLPEndpoint: config.Cfg.TracingEndpoint,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize opentelemetry", zap.Error(err))
		} else {
			defer shutdown(context.Background())
		}
	}
	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize metrics", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", config.Cfg.ServiceName+"-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	schedule.GetScheduler().Start(ctx)

	logger.Logger.Info("Scheduler service shutting down gracefully")
}
