package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestForEnvironment(t *testing.T) {
	tests := []struct {
		env, level   string
		wantEncoding string
		wantLevel    string
		wantDev      bool
	}{
		{"development", "", "console", "debug", true},
		{"production", "", "json", "info", false},
		{"production", "warn", "json", "warn", false},
		{"", "", "json", "info", false},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			cfg := ForEnvironment(tt.env, tt.level)
			if cfg.Encoding != tt.wantEncoding || cfg.Level != tt.wantLevel || cfg.IsDevelopment != tt.wantDev {
				t.Errorf("ForEnvironment(%q, %q) = %+v", tt.env, tt.level, cfg)
			}
		})
	}
}

func TestNewLevel(t *testing.T) {
	log, err := New(Config{Encoding: "json", Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info enabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn disabled at warn level")
	}

	log, err = New(Config{Level: "loud"})
	if err != nil {
		t.Fatalf("New with bad level: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("bad level did not fall back to info")
	}
}
