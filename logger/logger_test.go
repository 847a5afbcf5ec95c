package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "run")
	log.now = fixedClock
	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	log.Error("failed")

	expected := "03:04:05.006 INFO [run] shown 2\n03:04:05.006 ERROR [run] failed\n"
	if buf.String() != expected {
		t.Errorf("expected=%q, got=%q", expected, buf.String())
	}
}

func TestLoggerWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, "cli")
	log.now = fixedClock
	log.WithPrefix("eval").Debug("x")
	if !strings.Contains(buf.String(), "[cli/eval] x") {
		t.Errorf("expected nested prefix, got=%q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(LevelError) {
		t.Errorf("discard logger should not be enabled at any level")
	}
	log.Error("nothing")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"", LevelInfo, true},
		{" warning ", LevelWarn, true},
		{"error", LevelError, true},
		{"loud", LevelInfo, false},
	}
	for i, test := range tests {
		level, err := ParseLevel(test.input)
		if (err == nil) != test.ok {
			t.Errorf("tests[%d] (%q): unexpected error state %v", i, test.input, err)
			continue
		}
		if level != test.expected {
			t.Errorf("tests[%d] (%q): expected=%s, got=%s", i, test.input, test.expected, level)
		}
	}
}
