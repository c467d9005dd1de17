package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Logger{level: level, output: buf, colors: false}, buf
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		log     Level
		message string
		want    bool
	}{
		{"info shown at info", LevelInfo, LevelInfo, "hello", true},
		{"verbose hidden at info", LevelInfo, LevelVerbose, "hidden", false},
		{"verbose shown at verbose", LevelVerbose, LevelVerbose, "shown", true},
		{"debug hidden at verbose", LevelVerbose, LevelDebug, "hidden", false},
		{"error always shown", LevelError, LevelError, "boom", true},
		{"warn shown at info", LevelInfo, LevelWarn, "careful", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(tt.level)
			l.log(tt.log, tt.message)
			got := strings.Contains(buf.String(), tt.message)
			if got != tt.want {
				t.Errorf("message %q logged = %v, want %v (output: %q)", tt.message, got, tt.want, buf.String())
			}
		})
	}
}

func TestLogPrefix(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.log(LevelWarn, "something")
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected WARN prefix in %q", buf.String())
	}
}

func TestGlobalLoggerNilSafe(t *testing.T) {
	// Must not panic before Initialize is called
	old := defaultLogger
	defaultLogger = nil
	defer func() { defaultLogger = old }()

	Info("no-op")
	Warnf("no-op %d", 1)
	Errorf("no-op %s", "x")
}
