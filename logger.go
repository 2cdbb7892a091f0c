package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const logFileName = "rtasks.log"

// logger writes to a file next to the store. The terminal is owned by the UI,
// so nothing is ever logged to stdout or stderr.
var logger = zerolog.Nop()

// parseLogLevel converts a config log level to a zerolog.Level
func parseLogLevel(levelStr string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "", "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// setupLogger points the package logger at <dir>/rtasks.log. The returned
// closer must be called on exit.
func setupLogger(dir, levelStr string) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	level, _ := parseLogLevel(levelStr)

	logger = zerolog.New(file).
		Level(level).
		With().
		Timestamp().
		Logger()

	return file, nil
}
