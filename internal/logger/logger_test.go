package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_Setup_ShouldKeepLogFileHandleForCleanup(t *testing.T) {

	cfg := config.LoggerConfig{
		LogLevel:   config.LevelInfo,
		OutputFile: filepath.Join(t.TempDir(), "errors.log"),
	}

	Setup(context.Background(), cfg)
	defer Cleanup()

	assert.NotNil(t, logFile)
}
