package reminder

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"AssignReminders/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}
