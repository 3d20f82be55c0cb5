package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"ERROR", LogLevelError},
		{"warn", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{" debug ", LogLevelDebug},
		{"TRACE", LogLevelTrace},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLogLevel(tt.input), "input %q", tt.input)
	}
}

func TestLoggerKeepsLevel(t *testing.T) {
	logger := NewLogger(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, logger.GetLevel())

	// Below-threshold calls are dropped without touching the sink.
	logger.Debug("not emitted %d", 1)
	logger.Trace("not emitted %d", 2)
}
