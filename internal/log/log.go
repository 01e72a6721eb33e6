// Package log provides categorized structured logging for vpath.
// Messages carry a level, a category and key/value fields and are written
// through a log/slog text handler. Logging is off until Init is called.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Category groups related log messages.
type Category string

const (
	CatLocator Category = "locator" // registration and resolution
	CatOverlay Category = "overlay" // merged directory iteration
	CatConfig  Category = "config"  // configuration loading
	CatWatcher Category = "watcher" // file watcher events
	CatCLI     Category = "cli"     // command execution
)

var (
	mu      sync.RWMutex
	current = slog.New(slog.NewTextHandler(io.Discard, nil))
	level   = new(slog.LevelVar)
	closer  io.Closer
)

// ParseLevel maps a level name to a Level. Unknown names are an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Init routes log output to w at the given minimum level.
func Init(w io.Writer, min Level) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(min)
	current = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// InitFile routes log output to the file at path, appending.
// Returns a cleanup function to close the log file.
func InitFile(path string, min Level) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	Init(f, min)

	mu.Lock()
	closer = f
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if closer != nil {
			_ = closer.Close()
			closer = nil
		}
		current = slog.New(slog.NewTextHandler(io.Discard, nil))
	}, nil
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(min Level) {
	level.Set(min)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(lvl Level, cat Category, msg string, fields ...any) {
	mu.RLock()
	l := current
	mu.RUnlock()

	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	args := make([]any, 0, len(fields)+2)
	args = append(args, "cat", string(cat))
	args = append(args, fields...)
	l.Log(ctx, lvl, msg, args...)
}
