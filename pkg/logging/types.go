// Package logging provides the application and auth access loggers
// shared across the credential subsystem.
package logging

import (
	"fmt"
	"io"
	"log"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
)

var (
	// App is the global application logger
	App *AppLogger
	// Access is the global auth access logger
	Access AccessLogger
)

func init() {
	// Default loggers discard everything until Initialize is called, so
	// library use without setup stays silent.
	App = newAppLogger(io.Discard, LogLevelInfo)
	Access = &accessLogger{logger: log.New(io.Discard, "", 0)}
}

// Initialize sets up the global loggers. An empty appLogPath sends
// application logs to stdout; an empty accessLogPath discards access
// logs.
func Initialize(appLogPath, accessLogPath string, level LogLevel) error {
	app, err := NewAppLogger(appLogPath, level)
	if err != nil {
		return fmt.Errorf("creating app logger: %w", err)
	}

	access, err := NewAccessLogger(accessLogPath)
	if err != nil {
		return fmt.Errorf("creating access logger: %w", err)
	}

	App = app
	Access = access
	return nil
}
