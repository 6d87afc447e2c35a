package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_Level(t *testing.T) {
	tests := []struct {
		input string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"nonsense", logrus.WarnLevel},
	}

	for _, tt := range tests {
		InitLoggerWithOutput(&bytes.Buffer{}, tt.input, true)
		assert.Equal(t, tt.want, GetLogger().GetLevel(), tt.input)
	}
}

func TestLogging_Fields(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithOutput(&buf, "debug", true)

	Debug("attempt failed", logrus.Fields{"url": "http://x.test/a.mp4"}, logrus.Fields{"attempt": 2})

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, `msg="attempt failed"`)
	assert.Contains(t, out, "url=\"http://x.test/a.mp4\"")
	assert.Contains(t, out, "attempt=2")
}

func TestLogging_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithOutput(&buf, "warn", true)

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestMergeFields(t *testing.T) {
	merged := mergeFields(logrus.Fields{"a": 1}, logrus.Fields{"b": 2, "a": 3})
	assert.Equal(t, logrus.Fields{"a": 3, "b": 2}, merged)
}
