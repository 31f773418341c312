package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Level: "loud", Format: "console"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adapter.log")
	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Named("hyperstack").Debug("resolved", zap.String("instance_type", "n3-A100x1"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger":"hyperstack"`)
	assert.Contains(t, string(data), `"instance_type":"n3-A100x1"`)
}

func TestSetLoggerReplacesGlobal(t *testing.T) {
	prev := Logger
	defer SetLogger(prev)

	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))

	Named("api").Info("request", zap.String("path", "/resolve"))
	Warn("slow")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "api", logs.All()[0].LoggerName)
	assert.Equal(t, "slow", logs.All()[1].Message)
}
