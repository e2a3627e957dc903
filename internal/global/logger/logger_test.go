package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/codejudge.net/internal/adapter/logging"
)

func TestSet(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	core, logs := observer.New(zapcore.DebugLevel)
	Set(logging.NewFromZap(zap.New(core)))
	Set(nil)

	Warn("Failed to write response", "status", 500)
	Debug("ignored detail")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Failed to write response", entries[0].Message)
	assert.Equal(t, int64(500), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}
