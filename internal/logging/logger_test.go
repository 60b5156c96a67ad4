package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.in)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.in, err)
		}
		if !logger.Core().Enabled(tt.want) {
			t.Errorf("New(%q) does not enable %v", tt.in, tt.want)
		}
		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("New(%q) unexpectedly enables debug", tt.in)
		}
	}
}

func TestSetGlobal(t *testing.T) {
	orig := Global()
	defer SetGlobal(orig)

	replacement := zap.NewNop()
	SetGlobal(replacement)
	if Global() != replacement {
		t.Error("SetGlobal did not replace the global logger")
	}
}
