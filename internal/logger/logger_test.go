package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferLoggerCapturesMessages(t *testing.T) {
	log := NewBufferLogger()

	log.Debug("debug %d", 1)
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error %s", "details")

	require.Len(t, log.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug 1"}, log.Messages[0])
	assert.Equal(t, LogMessage{Level: "info", Message: "info message"}, log.Messages[1])
	assert.Equal(t, LogMessage{Level: "warn", Message: "warn message"}, log.Messages[2])
	assert.Equal(t, LogMessage{Level: "error", Message: "error details"}, log.Messages[3])
}

func TestBufferLoggerHasLevel(t *testing.T) {
	log := NewBufferLogger()
	log.Warn("something")

	assert.True(t, log.HasLevel("warn"))
	assert.False(t, log.HasLevel("error"))
}

func TestNoopLoggerDiscards(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	log := Noop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
}

func TestEnvLoggerDebugGating(t *testing.T) {
	t.Run("debug suppressed by default", func(t *testing.T) {
		t.Setenv("MOTDSTATS_DEBUG", "")
		log := NewEnvLogger("[test]")
		log.Debug("should not appear")
	})

	t.Run("debug enabled via env", func(t *testing.T) {
		t.Setenv("MOTDSTATS_DEBUG", "1")
		log := NewEnvLogger("[test]")
		log.Debug("appears on stderr")
	})
}
