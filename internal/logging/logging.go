// Package logging builds the zerolog logger shared by the CLI and the services.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const ErrorLogFileName = "errors.log"

type Options struct {
	Level zerolog.Level
	// Console receives human-readable output. Nil means stderr.
	Console io.Writer
	NoColor bool
	// ErrorLogPath, when set, also appends error-level events as JSON lines to that file.
	ErrorLogPath string
}

// New returns the logger and a closer for the error log file. The closer is never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		NoColor:    opts.NoColor,
		TimeFormat: time.TimeOnly,
	}

	if opts.ErrorLogPath == "" {
		return zerolog.New(consoleWriter).Level(opts.Level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.ErrorLogPath), 0o700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.ErrorLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open error log: %w", err)
	}

	writer := zerolog.MultiLevelWriter(
		consoleWriter,
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: file},
			Level:  zerolog.ErrorLevel,
		},
	)

	// The file keeps errors even when the console level is above error.
	level := opts.Level
	if level > zerolog.ErrorLevel {
		level = zerolog.ErrorLevel
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
