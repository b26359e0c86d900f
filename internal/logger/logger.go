// Package logger provides leveled logging for the deploy hook.
//
// Log lines go to stderr so that Certbot captures them in its hook output,
// while user-facing results (see the output package) go to stdout.
//
// # Levels
//
// Init(verbose, quiet) selects the threshold:
//   - default: Warn and Error
//   - verbose: everything from Debug up
//   - quiet: Error only (quiet wins over verbose)
//
// # Format
//
//	[LEVEL] YYYY-MM-DD HH:MM:SS message key=value ...
//
// Field keys are sorted. Values of fields whose key names a secret
// (password, key, token, session) are printed as ***.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields are structured key/value pairs appended to a log line.
type Fields map[string]interface{}

const redacted = "***"

var secretKeys = []string{"password", "key", "token", "session"}

// Logger handles leveled logging with thread-safe output.
type Logger struct {
	level  Level
	output io.Writer
	now    func() time.Time
	mu     sync.Mutex
}

var std = &Logger{
	level:  LevelWarn,
	output: os.Stderr,
	now:    time.Now,
}

// Init sets the global threshold from the --verbose and --quiet flags.
func Init(verbose, quiet bool) {
	switch {
	case quiet:
		SetLevel(LevelError)
	case verbose:
		SetLevel(LevelDebug)
	default:
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// GetLevel returns the current log level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// SetOutput redirects the global logger. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

func (l *Logger) write(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", level, l.now().Format("2006-01-02 15:04:05"), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fieldValue(k, fields[k]))
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.output, b.String())
}

// IsSecret reports whether a field or argument name holds a credential
func IsSecret(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func fieldValue(key string, v interface{}) interface{} {
	if IsSecret(key) {
		return redacted
	}
	return v
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	std.write(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	std.write(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.write(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.write(LevelError, fmt.Sprintf(format, args...), nil)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields Fields) {
	std.write(LevelDebug, msg, fields)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields Fields) {
	std.write(LevelInfo, msg, fields)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields Fields) {
	std.write(LevelWarn, msg, fields)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields Fields) {
	std.write(LevelError, msg, fields)
}

// LogError logs err with a context message. Nil errors are ignored.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.write(LevelError, fmt.Sprintf("%s: %v", msg, err), nil)
}
