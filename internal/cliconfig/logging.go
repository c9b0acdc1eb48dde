package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI logger writing to w. Human-readable console output
// is used unless jsonOutput is set. An unknown level falls back to info.
func NewLogger(w io.Writer, level string, jsonOutput bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the default stderr console logger at info level.
func Logger() zerolog.Logger {
	return NewLogger(os.Stderr, DefaultLogLevel, false)
}
