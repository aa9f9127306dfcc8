package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Tiliavir/worklog/internal/logging"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      log.Level
	}{
		{-1, log.ErrorLevel},
		{0, log.ErrorLevel},
		{1, log.WarnLevel},
		{2, log.InfoLevel},
		{3, log.DebugLevel},
		{7, log.DebugLevel},
	}
	for _, tt := range tests {
		if got := logging.LevelFor(tt.verbosity); got != tt.want {
			t.Errorf("LevelFor(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, 1)
	logger.Info("hidden")
	logger.Warn("shown", "date", "2020-04-08")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "2020-04-08") {
		t.Errorf("warn message missing: %q", out)
	}
}
