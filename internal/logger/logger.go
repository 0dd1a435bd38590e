package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// TODO: Allow configuration of log level (e.g., via env var or config file)

var defaultLogger *slog.Logger

// getLogFilePath determines the path for the application log file based on XDG spec.
func getLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, "tro", "app.log"), nil
}

// InitLogger initializes the default logger. Interactive mode silences
// stderr so log lines don't tear the selection menu; logs still land in
// the state-dir file. It MUST be called once at the beginning of the
// application.
func InitLogger(interactive bool) {
	var writers []io.Writer

	logFilePath, err := getLogFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error determining log file path: %v. File logging disabled.\n", err)
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log directory: %v. File logging disabled.\n", err)
	} else {
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v. File logging disabled.\n", logFilePath, err)
		} else {
			// Not explicitly closed; for a CLI tool letting the OS close
			// it on exit is acceptable.
			writers = append(writers, file)
		}
	}

	if !interactive {
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	defaultLogger = slog.New(handler)
}

// SetLogger allows replacing the default logger instance, e.g. for
// tests. Should be used after InitLogger.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// checkLogger ensures the logger is initialized before use, preventing nil panics.
func checkLogger() {
	if defaultLogger == nil {
		InitLogger(false)
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	checkLogger()
	defaultLogger.Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	checkLogger()
	defaultLogger.Error(msg, args...)
}

// Errorf logs a formatted error message.
// Note: slog prefers structured logging; kept for call sites that only
// have a format string.
func Errorf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	checkLogger()
	defaultLogger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	checkLogger()
	defaultLogger.Warn(msg, args...)
}
