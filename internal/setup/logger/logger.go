package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Level parses a configured level name, falling back to info.
func Level(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}

	return lvl
}

// New returns a structured JSON logger for non-interactive deployments.
func New(level string) zerolog.Logger {
	return zerolog.New(os.Stdout).
		Level(Level(level)).
		With().
		Timestamp().
		Caller().
		Logger()
}
