package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLoggersWritesFiles(t *testing.T) {
	saved := []*zap.Logger{ErrorLogger, AuditLogger, RequestLogger, SecurityLogger, SystemLogger}
	t.Cleanup(func() {
		ErrorLogger, AuditLogger, RequestLogger, SecurityLogger, SystemLogger = saved[0], saved[1], saved[2], saved[3], saved[4]
	})

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitLoggers(dir))

	AuditLogger.Info("task created", zap.String("task_id", "t-1"))
	SecurityLogger.Info("below warn level")
	SyncLoggers()

	audit, err := os.ReadFile(filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(audit), `"task_id":"t-1"`), string(audit))
	require.True(t, strings.Contains(string(audit), `"timestamp"`), string(audit))

	security, err := os.ReadFile(filepath.Join(dir, "security.log"))
	require.NoError(t, err)
	require.Empty(t, security)
}

func TestDefaultLoggersAreUsable(t *testing.T) {
	require.NotPanics(t, func() {
		ErrorLogger.Error("nothing happens")
		SyncLoggers()
	})
}
