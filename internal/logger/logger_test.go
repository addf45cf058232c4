package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_ValidLevels(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		t.Run(lvl, func(t *testing.T) {
			err := Initialize(lvl)
			assert.NoError(t, err)
			assert.IsType(t, &zap.SugaredLogger{}, Log)
			assert.True(t, Log.Desugar().Core().Enabled(mustLevel(t, lvl)))

			assert.NotPanics(t, func() {
				Log.Infow("test log", "level", lvl)
				Sync()
			})
		})
	}
}

func TestInitialize_InvalidLevel(t *testing.T) {
	originalLog := Log
	defer func() { Log = originalLog }()

	err := Initialize("not-a-level")
	assert.Error(t, err)
	assert.Same(t, originalLog, Log)
}

func TestLog_NopBeforeInitialize(t *testing.T) {
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Log.Infow("nop logger test")
	})
}

func mustLevel(t *testing.T, lvl string) zapcore.Level {
	t.Helper()
	l, err := zapcore.ParseLevel(lvl)
	assert.NoError(t, err)
	return l
}
