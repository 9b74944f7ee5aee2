// Package logger constructs the zerolog logger used by the CLI layer.
// The cascade library itself never logs.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a console logger writing to stderr. quiet raises the level so
// only errors are emitted.
func New(quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.ErrorLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
