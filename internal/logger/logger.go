package logger

import (
	"os"
	"syscall"
	"time"

	"codeberg.org/mutker/thermostatd/internal/errors"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Setup configures the diagnostic logger. The level is one of
// "debug", "info", "warning" or "error".
func Setup(level string, isService bool) error {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	if isService {
		output.TimeFormat = ""
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)

	return nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, errors.New().WithData(errors.ErrInvalidLogLevel, level)
	}
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return syscall.Getpgrp() == syscall.Getpid()
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info logs an info message
func Info() *zerolog.Event {
	return log.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return log.Error()
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *zerolog.Event {
	return log.Error().
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error())
}

// Fatal logs a fatal message and exits the program
func Fatal() *zerolog.Event {
	return log.Fatal()
}
