package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(zapcore.WarnLevel)
	if cfg.Level.Level() != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %s", cfg.Level.Level())
	}
	if !cfg.DisableStacktrace {
		t.Error("stacktraces should be disabled")
	}
	if len(cfg.OutputPaths) != 1 || cfg.OutputPaths[0] != "stderr" {
		t.Errorf("unexpected output paths %v", cfg.OutputPaths)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		json    bool
		wantErr bool
	}{
		{"debug", false, false},
		{"info", true, false},
		{"error", false, false},
		{"loud", false, true},
	}

	for _, tt := range tests {
		logger, err := New("morphac", tt.level, tt.json)
		if tt.wantErr {
			if err == nil {
				t.Errorf("level %q: expected error", tt.level)
			}
			continue
		}
		if err != nil {
			t.Fatalf("level %q: %v", tt.level, err)
		}
		want, _ := zapcore.ParseLevel(tt.level)
		if !logger.Core().Enabled(want) {
			t.Errorf("level %q should be enabled", tt.level)
		}
	}
}
