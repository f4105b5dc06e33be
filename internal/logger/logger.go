package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the root logger from file configuration: a console writer on
// stderr plus an optional size-rotated file writer.
func New(cfg FileLogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{consoleWriter(cfg.LogFormat)}

	if cfg.LogFile != "" {
		fileWriter, err := newFileWriter(cfg)
		if err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, fileWriter)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)

	// Route the standard log package through zerolog so third-party
	// libraries share the same sink.
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

func consoleWriter(format string) io.Writer {
	if format == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

func newFileWriter(cfg FileLogConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, err
	}

	maxSize := cfg.MaxLogSizeMB
	if maxSize <= 0 {
		maxSize = DefaultMaxLogSizeMB
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxLogBackups,
		LocalTime:  true,
	}

	if cfg.LogFormat == "json" {
		return rotated, nil
	}
	return zerolog.ConsoleWriter{
		Out:        rotated,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}, nil
}
