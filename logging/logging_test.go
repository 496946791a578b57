package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLevels(t *testing.T) {
	cases := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"unknown_falls_back", "chatty", zerolog.InfoLevel},
		{"empty_falls_back", "", zerolog.InfoLevel},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logger := Setup(c.level)
			if got := logger.GetLevel(); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
