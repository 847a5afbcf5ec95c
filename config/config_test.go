package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"

	"github.com/massmola/compiler/logger"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketch.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
canvas:
  width: 800
  background: "#202020"
limits:
  timeout: 250ms
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	expected := Default()
	expected.Path = cfg.Path
	expected.Canvas.Width = 800
	expected.Canvas.Background = "#202020"
	expected.Limits.Timeout = "250ms"
	expected.LogLevel = "debug"
	if diff := pretty.Diff(cfg, expected); len(diff) != 0 {
		t.Errorf("unexpected config:\n%s", pretty.Sprint(diff))
	}
	if d, _ := cfg.Timeout(); d != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got=%s", d)
	}
	if cfg.Level() != logger.LevelDebug {
		t.Errorf("expected debug level, got=%s", cfg.Level())
	}
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 400 || cfg.Limits.MaxSteps != 1000000 {
		t.Errorf("expected defaults, got=%# v", pretty.Formatter(cfg))
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		contents string
		message  string
	}{
		{"canvas:\n  width: 0\n", "canvas size must be positive"},
		{"limits:\n  max_steps: -1\n", "max_steps must not be negative"},
		{"limits:\n  timeout: soon\n", "invalid timeout"},
		{"log_level: loud\n", "unknown log level"},
		{"colour: red\n", "field colour not found"},
		{"canvas: [1, 2]\n", "cannot unmarshal"},
	}
	for i, test := range tests {
		_, err := Load(writeConfig(t, test.contents))
		if err == nil {
			t.Errorf("tests[%d] (%q): expected an error", i, test.contents)
			continue
		}
		if !strings.Contains(err.Error(), test.message) {
			t.Errorf("tests[%d] (%q): expected %q in %q", i, test.contents, test.message, err)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got=%v", err)
	}
	if _, err := Load(""); err == nil {
		t.Errorf("expected an error for an empty path")
	}
}

func TestTimeoutDisabled(t *testing.T) {
	cfg := Default()
	cfg.Limits.Timeout = "0"
	if d, err := cfg.Timeout(); err != nil || d != 0 {
		t.Errorf("expected no timeout, got=%s (%v)", d, err)
	}
}
