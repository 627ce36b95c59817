package vlog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls how Setup constructs a logger.
type Config struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string
	// FilePath is the path to the log file. Empty disables file logging.
	FilePath string
	// MaxSizeMB is the maximum file size in MB before rotation (default 10).
	MaxSizeMB int
	// MaxFiles is the maximum number of rotated files to keep (default 5).
	MaxFiles int
	// WriteToStderr additionally writes to stderr (default true).
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults for file-backed logging at the
// default path (~/.vettore/logs/vettore.log).
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		FilePath:      DefaultLogPath(),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: true,
	}
}

// Discard returns a logger that drops everything. This is the default
// logger attached to a collection that was never configured with Setup;
// the engine must function identically with or without logging attached.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Setup builds a JSON-structured logger per cfg and returns it along with a
// cleanup function that flushes and closes the underlying file, if any.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	if cfg.FilePath == "" {
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
		return slog.New(handler), func() {}, nil
	}

	if err := EnsureLogDir(); err != nil {
		return nil, nil, err
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 5
	}

	writer, err := newRotatingWriter(cfg.FilePath, maxSize, maxFiles)
	if err != nil {
		return nil, nil, err
	}

	var output io.Writer = writer
	if cfg.WriteToStderr {
		output = io.MultiWriter(writer, os.Stderr)
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	logger := slog.New(handler)
	cleanup := func() { _ = writer.Close() }

	return logger, cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
