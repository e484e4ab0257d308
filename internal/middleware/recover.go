package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"AssignReminders/config"
	"AssignReminders/pkg/errors"
	"AssignReminders/pkg/logger"
	"AssignReminders/pkg/response"
)

// RecoverMiddleware turns handler panics into 500 responses instead of
// dropped connections.
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}) {
	logger.Logger.Error("[PANIC RECOVERED]",
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.ByteString("stack", shortStack(debug.Stack())))

	errDef := errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "服务器内部错误，请稍后重试",
	}
	if !config.Cfg.IsProduction() {
		// 开发环境直接暴露 panic 内容
		errDef.Message = fmt.Sprintf("Internal error: %v", err)
	}

	response.Error(ctx, c, errDef)
}

// shortStack trims runtime frames and caps the stack at 30 lines.
func shortStack(stack []byte) []byte {
	lines := strings.Split(string(stack), "\n")
	var filtered []string
	for _, line := range lines {
		if strings.Contains(line, "runtime/panic.go") || strings.Contains(line, "/runtime/") {
			continue
		}
		filtered = append(filtered, line)
		if len(filtered) >= 30 {
			break
		}
	}
	return []byte(strings.Join(filtered, "\n"))
}
