// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"

	// LevelDisabled turns logging off.
	LevelDisabled LogLevel = "disabled"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel `toml:"level"`

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool `toml:"pretty"`

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer `toml:"-"`
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// SetLevel changes the global level without replacing the logger.
func SetLevel(level LogLevel) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// ParseLevel validates a level name from a flag or config file.
func ParseLevel(s string) (LogLevel, error) {
	switch LogLevel(strings.ToLower(s)) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelDisabled:
		return LogLevel(strings.ToLower(s)), nil
	case "warning":
		return LevelWarn, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Per-page detail
//   - Fetch dispatch and completion (page_index, page_size, duration)
//   - Dropped advance events while a fetch is pending
//   - Stale results discarded after a reset
//
// Info: Lifecycle
//   - Controller start and stop
//   - Query changes and resets (epoch)
//   - End of data reached
//   - Config reloads
//
// Warn: Degraded but working
//   - Fetch failures (the page is retried on the next advance)
//   - Page cache errors (fallback to the page func)
//
// Error: Requires attention
//   - Invalid configuration
//   - Demo startup failures
