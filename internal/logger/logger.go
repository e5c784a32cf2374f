package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The level field is named "severity" so
// Cloud Logging picks up log levels from the JSON payload.
func New() zerolog.Logger {
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(levelFromEnv())
}

// levelFromEnv reads LOG_LEVEL; unknown or empty values fall back to info
// (debug in development).
func levelFromEnv() zerolog.Level {
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	if os.Getenv("ENV") == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
