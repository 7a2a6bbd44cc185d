package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/config"
)

func TestSetup_ConsoleOnly(t *testing.T) {
	logger, err := Setup(&config.LogConfig{
		Level:         "debug",
		EnableConsole: true,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Debug("console logger works")
	require.NoError(t, logger.Sync())
}

func TestSetup_FileOutput(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(&config.LogConfig{
		Level:      "info",
		EnableFile: true,
		LogDir:     dir,
		Filename:   "test.log",
		MaxSize:    1,
		JSONFormat: true,
	})
	require.NoError(t, err)

	logger.Info("file logger works", zap.String("key", "value"))
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "file logger works")
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestSetup_NoOutputs(t *testing.T) {
	_, err := Setup(&config.LogConfig{})
	assert.Error(t, err)
}

func TestSetup_NilUsesDefaults(t *testing.T) {
	logger, err := Setup(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zap.InfoLevel, parseLevel("info"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zap.InfoLevel, parseLevel("bogus"))
}
