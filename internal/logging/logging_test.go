package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != WarnLevel {
		t.Errorf("expected Level to be WarnLevel, got %v", cfg.Level)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected Output to be os.Stderr")
	}
	if cfg.Pretty {
		t.Errorf("expected Pretty to be false")
	}
	if cfg.TimeFormat != time.RFC3339 {
		t.Errorf("expected TimeFormat to be RFC3339, got %s", cfg.TimeFormat)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"  DEBUG  ", DebugLevel},
		{"info", InfoLevel},
		{"WARN", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"off", DisabledLevel},
		{"disabled", DisabledLevel},
		{"", WarnLevel},
		{"INVALID", WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInit_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf})
	defer Init(DefaultConfig())

	Logger.Debug().Msg("hidden")
	Logger.Info().Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug message written at info level: %s", output)
	}
	if !strings.Contains(output, `"message":"shown"`) {
		t.Errorf("expected info message in output, got: %s", output)
	}
	if !strings.Contains(output, `"time":`) {
		t.Errorf("expected timestamp in output, got: %s", output)
	}
}

func TestInit_Pretty(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf, Pretty: true})
	defer Init(DefaultConfig())

	Logger.Info().Msg("pretty message")

	output := buf.String()
	if strings.Contains(output, `"message"`) {
		t.Errorf("pretty output should not be JSON: %s", output)
	}
	if !strings.Contains(output, "pretty message") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})
	defer Init(DefaultConfig())

	log := Component("facade")
	log.Debug().Str("path", "/etc/app.json").Msg("loaded")

	output := buf.String()
	if !strings.Contains(output, `"component":"facade"`) {
		t.Errorf("expected component field, got: %s", output)
	}
	if !strings.Contains(output, `"path":"/etc/app.json"`) {
		t.Errorf("expected path field, got: %s", output)
	}
}
