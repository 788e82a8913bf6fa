package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERR", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"something", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("X", "val")
	if v := getenv("X", "def"); v != "val" {
		t.Fatalf("getenv returned %q, want 'val'", v)
	}
	if v := getenv("Y", "def"); v != "def" {
		t.Fatalf("getenv returned %q, want 'def'", v)
	}
}

func TestInitAndL(t *testing.T) {
	_ = os.Unsetenv("LOG_LEVEL")
	_ = os.Unsetenv("LOG_PRETTY")
	Init()
	if L().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %v", L().GetLevel())
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	Init()
	if L().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", L().GetLevel())
	}
}

func TestSetup_CapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Level: "warn", Out: &buf})
	t.Cleanup(Init)

	L().Info().Msg("hidden")
	L().Warn().Str("path", "/price").Msg("seed_item_rejected")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"seed_item_rejected"`) || !strings.Contains(out, `"service":"tradedesk"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestLoggerAccessor_NotNil(t *testing.T) {
	mu.Lock()
	base, ready = zerolog.Logger{}, false
	mu.Unlock()
	t.Setenv("LOG_LEVEL", "error")
	lg := L()
	if lg == nil || lg.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("logger not initialized from the environment")
	}
}
