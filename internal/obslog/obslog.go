// Package obslog provides the structured logger cmd/server and its HTTP
// handler (internal/apiserver) share, modeled on the netex-validator's logging package: a small
// wrapper over log/slog with a configurable level and format.
package obslog

import (
	"io"
	"log/slog"
	"os"
)

// Level is the logger's minimum severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger wraps slog.Logger with the component name every entry carries.
type Logger struct {
	*slog.Logger
}

// Config configures a new Logger.
type Config struct {
	Level     Level
	JSON      bool
	Output    io.Writer
	Component string
}

// New builds a Logger from cfg, applying defaults for a zero-value Config.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Component == "" {
		cfg.Component = "sakha-transit"
	}

	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel()}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return &Logger{Logger: slog.New(handler).With("component", cfg.Component)}
}

// Default builds a text-format, info-level logger writing to stdout.
func Default(component string) *Logger {
	return New(Config{Level: LevelInfo, Component: component})
}
