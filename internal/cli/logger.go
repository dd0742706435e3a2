package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/exithook/internal/config"
	"github.com/mrz1836/exithook/internal/constants"
	"github.com/mrz1836/exithook/internal/logging"
)

// logFileWriter holds the log file writer for cleanup purposes.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// logFileMu protects logFileWriter.
var logFileMu sync.Mutex //nolint:gochecknoglobals // Protects logFileWriter

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// configureZerologGlobals sets the timestamp and message field names used in every log line.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// buildLogger creates a zerolog.Logger at level writing to w.
func buildLogger(level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).Hook(logging.NewSensitiveDataHook()).With().Timestamp().Logger()
}

// InitLogger creates the hook's logger.
//
// Log levels are set as follows:
//   - verbose=true: Debug level
//   - quiet=true: Warn level
//   - otherwise: log.level from configuration (Info when unset)
//
// Output goes to stderr: a console writer on a TTY without NO_COLOR, JSON otherwise.
// When log.file_enabled is set, entries are also written to a rotating file under
// $EXITHOOK_HOME/logs with secrets redacted. If that file cannot be created the
// logger continues with console-only output.
func InitLogger(verbose, quiet bool, cfg *config.LogConfig) zerolog.Logger {
	configureZerologGlobals()

	level := selectLevel(verbose, quiet, cfg)
	console := selectOutput()

	if cfg == nil || !cfg.FileEnabled {
		return buildLogger(level, console)
	}

	fileWriter, err := createLogFileWriter()
	if err != nil {
		logger := buildLogger(level, console)
		logger.Debug().Err(err).Msg("log file unavailable, logging to console only")
		return logger
	}

	logFileMu.Lock()
	logFileWriter = fileWriter
	logFileMu.Unlock()

	return buildLogger(level, zerolog.MultiLevelWriter(console, fileWriter))
}

// InitLoggerWithWriter creates a logger with a custom writer and no log file.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, cfg *config.LogConfig, w io.Writer) zerolog.Logger {
	configureZerologGlobals()
	return buildLogger(selectLevel(verbose, quiet, cfg), w)
}

// CloseLogFile closes the log file writer if it was opened.
func CloseLogFile() {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the log level from flags, then configuration.
// Flags win; an unknown configured level falls back to Info.
func selectLevel(verbose, quiet bool, cfg *config.LogConfig) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	}

	if cfg == nil || cfg.Level == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer for the hook log,
// wrapped so that secrets are never written to disk.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := config.LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}
