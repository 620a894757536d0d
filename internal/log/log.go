// Package log is a small leveled key/value logger over log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput redirects log lines, mostly for tests.
func SetOutput(w io.Writer) {
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// SetLevel accepts debug, info, warn or error.
func SetLevel(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "", "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}

func Debug(msg string, kv ...any) { logger.Load().Debug(msg, kv...) }

func Info(msg string, kv ...any) { logger.Load().Info(msg, kv...) }

func Warn(msg string, kv ...any) { logger.Load().Warn(msg, kv...) }

// Error prepends err to the key/value list.
func Error(msg string, err error, kv ...any) {
	logger.Load().Error(msg, append([]any{"err", err}, kv...)...)
}
