// Package exlog provides the minimal structured logging exathctl
// needs: text to stderr during interactive use, optional JSON to a
// file when run as a batch job.
package exlog

import (
	"log/slog"
	"os"
)

// Config configures the global logger.
type Config struct {
	Level  slog.Level
	JSON   bool
	Output *os.File
}

// DefaultConfig logs info and above as text to stderr.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo, Output: os.Stderr}
}

var logger *slog.Logger

// Init installs cfg as the default logger.
func Init(cfg Config) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func log() *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { log().Debug(msg, args...) }
func Info(msg string, args ...any)  { log().Info(msg, args...) }
func Warn(msg string, args ...any)  { log().Warn(msg, args...) }
func Error(msg string, args ...any) { log().Error(msg, args...) }
