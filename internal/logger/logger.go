// Package logger wraps log/slog with the configuration and request logging
// used by the TiffinCRM server and CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Level names accepted in configuration.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config selects level, format and destination.
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // "json" or "text"
	Output      string // "stdout", "stderr", or a file path
	Environment string // added to every record when set
	Caller      bool   // add file:line to error records
}

// DefaultConfig returns text output at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:       LevelInfo,
		Format:      "text",
		Output:      "stderr",
		Environment: "development",
		Caller:      true,
	}
}

// Logger embeds *slog.Logger and remembers its configuration so derived
// loggers keep caller reporting.
type Logger struct {
	*slog.Logger
	config Config
	closer io.Closer
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, "warning":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a Logger from config. A file Output that cannot be opened
// falls back to stderr.
func New(config Config) *Logger {
	var out io.Writer
	var closer io.Closer
	switch config.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			out = os.Stderr
		} else {
			out, closer = f, f
		}
	}
	l := NewWithWriter(config, out)
	l.closer = closer
	return l
}

// NewWithWriter builds a Logger writing to w.
func NewWithWriter(config Config, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(config.Level)}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	sl := slog.New(handler)
	if config.Environment != "" {
		sl = sl.With("environment", config.Environment)
	}
	return &Logger{Logger: sl, config: config}
}

// Discard returns a Logger that drops everything. Tests use it.
func Discard() *Logger {
	return NewWithWriter(Config{Level: LevelError}, io.Discard)
}

// With returns a Logger carrying the extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), config: l.config}
}

// WithComponent tags records with the owning component.
func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

// Error logs at error level, adding the caller when enabled.
func (l *Logger) Error(msg string, args ...any) {
	if l.config.Caller {
		if _, file, line, ok := runtime.Caller(1); ok {
			args = append(args, "caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}
	l.Logger.Error(msg, args...)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
