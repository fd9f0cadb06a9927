package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the rotating file sink.
type FileConfig struct {
	Path       string
	Level      string // debug, info, warn, error
	MaxSizeMB  int
	MaxBackups int
}

// FileSink is an open file sink. Close flushes and closes the current file.
type FileSink struct {
	Logger zerolog.Logger
	closer io.Closer
}

// OpenFile builds a zerolog logger writing JSON lines to cfg.Path through a
// redacting, size-rotated writer.
func OpenFile(cfg FileConfig) (*FileSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    max(cfg.MaxSizeMB, 1),
		MaxBackups: cfg.MaxBackups,
	}

	logger := zerolog.New(NewRedactor().Wrap(rotator)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &FileSink{Logger: logger, closer: rotator}, nil
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
