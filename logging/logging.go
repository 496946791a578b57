package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger with a console writer. Unknown levels fall
// back to info rather than failing boot.
func Setup(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
