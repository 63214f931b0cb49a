// Package logging builds the zerolog logger shared by the store and the
// domain services. Log lines go to the console and, when a log file is
// configured, to an appended file sink. Logging is fire-and-forget:
// a broken file sink degrades to console-only output.
package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr (pretty console output in
// development) and to the given log file. An empty path disables the
// file sink.
func New(logFile, level string, dev bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var console zerolog.LevelWriter = zerolog.MultiLevelWriter(os.Stderr)
	if dev {
		console = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	writer := console
	if logFile != "" {
		if f, ferr := openLogFile(logFile); ferr == nil {
			writer = zerolog.MultiLevelWriter(console, f)
		}
	}

	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
