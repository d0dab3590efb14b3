// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package eapi

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// MaxLogValueLength limits the length of log values to prevent log injection
// and excessive log file growth. Values longer than this are truncated.
const MaxLogValueLength = 1024

// Logger interface for pluggable logging support
//
// Implementations should use structured logging with key-value pairs.
// The go-eapi library provides two implementations:
//   - DefaultLogger: Wraps Go's standard log package with configurable log level
//   - NoOpLogger: Zero-overhead logging when disabled (default)
//
// Request bodies logged at Debug level are redacted first so that enable
// passwords and other sensitive command input never reach the log in the
// clear.
//
// Example custom logger integration:
//
//	type SlogAdapter struct {
//	    logger *slog.Logger
//	}
//
//	func (s *SlogAdapter) Debug(msg string, keysAndValues ...any) {
//	    s.logger.Debug(msg, keysAndValues...)
//	}
//	// ... implement other methods
//
//	client, _ := eapi.NewClient("switch1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	    eapi.WithLogger(&SlogAdapter{logger: slog.Default()}))
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// LogLevel represents the severity threshold for logging
type LogLevel int

const (
	// LogLevelDebug enables all log levels (most verbose)
	LogLevelDebug LogLevel = iota

	// LogLevelInfo enables Info, Warn, and Error logs
	LogLevelInfo

	// LogLevelWarn enables Warn and Error logs
	LogLevelWarn

	// LogLevelError enables only Error logs
	LogLevelError

	// LogLevelNone disables all logging
	LogLevelNone
)

// String returns the string representation of a LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// DefaultLogger wraps Go's standard log package with configurable log level
//
// Log output format: [LEVEL] message key1=value1 key2=value2
//
// Example:
//
//	logger := eapi.NewDefaultLogger(eapi.LogLevelDebug)
//	client, _ := eapi.NewClient("switch1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"),
//	    eapi.WithLogger(logger))
type DefaultLogger struct {
	level LogLevel
}

// NewDefaultLogger creates a DefaultLogger with the specified log level
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level}
}

// Debug logs a debug message with structured key-value pairs
func (l *DefaultLogger) Debug(msg string, keysAndValues ...any) {
	if l.level <= LogLevelDebug {
		l.log("DEBUG", msg, keysAndValues...)
	}
}

// Info logs an informational message with structured key-value pairs
func (l *DefaultLogger) Info(msg string, keysAndValues ...any) {
	if l.level <= LogLevelInfo {
		l.log("INFO", msg, keysAndValues...)
	}
}

// Warn logs a warning message with structured key-value pairs
func (l *DefaultLogger) Warn(msg string, keysAndValues ...any) {
	if l.level <= LogLevelWarn {
		l.log("WARN", msg, keysAndValues...)
	}
}

// Error logs an error message with structured key-value pairs
func (l *DefaultLogger) Error(msg string, keysAndValues ...any) {
	if l.level <= LogLevelError {
		l.log("ERROR", msg, keysAndValues...)
	}
}

// sanitizeLogValue sanitizes a log value to prevent log injection attacks
// and limit log size. Control characters are replaced with safe
// alternatives and overlong values are truncated.
//
// Example attack prevented:
//
//	Input: "user\n[ERROR] Fake attack message"
//	Output: "user [ERROR] Fake attack message" (single line)
//
// Returns the sanitized string value.
func sanitizeLogValue(val any) string {
	str := fmt.Sprintf("%v", val)

	if len(str) > MaxLogValueLength {
		str = str[:MaxLogValueLength] + "...[TRUNCATED]"
	}

	var builder strings.Builder
	builder.Grow(len(str))

	for i := 0; i < len(str); {
		r, size := utf8.DecodeRuneInString(str[i:])
		if r == utf8.RuneError && size <= 1 {
			builder.WriteRune('.')
			i++
			continue
		}

		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == 0x0C:
			builder.WriteRune(' ')
		case r == 0x200B || r == 0x200C || r == 0x200D || r == 0xFEFF:
			// Zero-width characters, dropped entirely
		case r == 0x202E:
			// Right-to-left override
			builder.WriteRune(' ')
		case r < 32 || r == 127:
			// Remaining control characters including ESC and backspace
			builder.WriteRune('.')
		default:
			builder.WriteString(str[i : i+size])
		}
		i += size
	}

	return builder.String()
}

// log formats and outputs a log message with structured key-value pairs
//
// All key-value pairs are sanitized to prevent log injection attacks and
// enforce size limits. The message string is NOT sanitized as it comes from
// trusted sources (the library code itself).
func (l *DefaultLogger) log(level, msg string, keysAndValues ...any) {
	estimatedSize := len(level) + len(msg) + 10 + (len(keysAndValues) * 25)
	var builder strings.Builder
	builder.Grow(estimatedSize)

	builder.WriteString("[")
	builder.WriteString(level)
	builder.WriteString("] ")
	builder.WriteString(msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		builder.WriteString(" ")
		builder.WriteString(sanitizeLogValue(keysAndValues[i]))

		if i+1 < len(keysAndValues) {
			builder.WriteString("=")
			builder.WriteString(sanitizeLogValue(keysAndValues[i+1]))
		} else {
			// Odd-length array - mark missing value explicitly
			builder.WriteString("=<MISSING>")
		}
	}

	log.Println(builder.String())
}

// NoOpLogger is a no-operation logger that discards all log messages
//
// This logger provides zero overhead when logging is disabled. All methods
// are no-ops and will be optimized away by the compiler.
//
// This is the default logger used by go-eapi when no custom logger is
// configured.
//
// Example:
//
//	// Logging is disabled by default (uses NoOpLogger)
//	client, _ := eapi.NewClient("switch1",
//	    eapi.Username("admin"),
//	    eapi.Password("secret"))
type NoOpLogger struct{}

// Debug discards the log message
func (n *NoOpLogger) Debug(_ string, _ ...any) {}

// Info discards the log message
func (n *NoOpLogger) Info(_ string, _ ...any) {}

// Warn discards the log message
func (n *NoOpLogger) Warn(_ string, _ ...any) {}

// Error discards the log message
func (n *NoOpLogger) Error(_ string, _ ...any) {}
