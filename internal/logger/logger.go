// Package logger holds the diagnostic logger.
//
// User-facing progress goes through download events; this logger carries
// request-level detail and is quiet unless a lower level is asked for.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger *logrus.Logger
)

// InitLogger initializes the global logger for CLI operations.
func InitLogger(logLevel string, noColor bool) {
	InitLoggerWithOutput(os.Stderr, logLevel, noColor)
}

// InitLoggerWithOutput is InitLogger with an explicit destination.
func InitLoggerWithOutput(out io.Writer, logLevel string, noColor bool) {
	l := logrus.New()
	l.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.WarnLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.TextFormatter{
		DisableColors: noColor,
		FullTimestamp: true,
	})

	mu.Lock()
	logger = l
	mu.Unlock()
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		InitLogger("warn", false)
		return GetLogger()
	}
	return l
}

// Debug logs a debug message.
func Debug(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Debug(msg)
}

// Info logs an info message.
func Info(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Info(msg)
}

// Warn logs a warning message.
func Warn(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Warn(msg)
}

// Error logs an error message.
func Error(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Error(msg)
}

// mergeFields merges multiple logrus.Fields into one
func mergeFields(fields ...logrus.Fields) logrus.Fields {
	result := make(logrus.Fields)
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}
