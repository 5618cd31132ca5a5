package core

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/oops"
)

// InitLoggingWithDefaultPath sends logs to GetDefaultLogPath().
func InitLoggingWithDefaultPath(verbose bool) (*os.File, error) {
	return InitLoggingWithPath(GetDefaultLogPath(), verbose)
}

// InitLoggingWithPath points the global logger at the file at path,
// appending. With verbose set, logs are mirrored to stderr and debug
// output is enabled. The caller owns the returned file.
func InitLoggingWithPath(path string, verbose bool) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, oops.In("logging").With("path", path).Wrapf(err, "create log directory")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, oops.In("logging").With("path", path).Wrapf(err, "open log file")
	}

	var out io.Writer = file
	if verbose {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		out = io.MultiWriter(console, file)
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return file, nil
}

// ApplyLogLevel sets the global level from a persisted minLogLevel value.
// Unknown values fall back to info.
func ApplyLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(ZerologLevel(level))
}

func ZerologLevel(level LogLevel) zerolog.Level {
	switch LogLevel(strings.ToUpper(string(level))) {
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
