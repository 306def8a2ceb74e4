package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// VerboseChecker reports whether debug and info lines are shown
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes component-tagged lines to stderr. Debug and Info are gated on
// the verbose checker; Warn and Error are always written.
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	writer         io.Writer
	mu             *sync.Mutex
	now            func() time.Time
}

// Field is a key-value pair appended to a log line
type Field struct {
	Key   string
	Value any
}

// New creates a logger writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		writer:         os.Stderr,
		mu:             &sync.Mutex{},
		now:            time.Now,
	}
}

// NewWithCallback creates a logger whose verbosity is read from verboseCheck on each call
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, callbackChecker(verboseCheck))
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return New("", nil).WithWriter(io.Discard)
}

// WithComponent returns a logger sharing this one's output under another component name
func (l *Logger) WithComponent(component string) *Logger {
	clone := *l
	clone.component = component
	return &clone
}

// WithWriter returns a logger writing to w
func (l *Logger) WithWriter(w io.Writer) *Logger {
	clone := *l
	clone.writer = w
	clone.mu = &sync.Mutex{}
	return &clone
}

type callbackChecker func() bool

func (c callbackChecker) IsVerbose() bool {
	return c != nil && c()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs only when verbose
func (l *Logger) Debug(msg string, args ...any) {
	if l.verbose() {
		l.write(LevelDebug, msg, nil, args...)
	}
}

// Info logs only when verbose
func (l *Logger) Info(msg string, args ...any) {
	if l.verbose() {
		l.write(LevelInfo, msg, nil, args...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	l.write(LevelWarn, msg, nil, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.write(LevelError, msg, nil, args...)
}

// DebugWithFields logs a debug line with trailing fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...any) {
	if l.verbose() {
		l.write(LevelDebug, msg, fields, args...)
	}
}

// InfoWithFields logs an info line with trailing fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...any) {
	if l.verbose() {
		l.write(LevelInfo, msg, fields, args...)
	}
}

// WarnWithFields logs a warning with trailing fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...any) {
	l.write(LevelWarn, msg, fields, args...)
}

// Stage logs how long a named step took, measured from start
func (l *Logger) Stage(name string, start time.Time, fields ...Field) {
	if !l.verbose() {
		return
	}
	fields = append([]Field{F("stage", name)}, fields...)
	fields = append(fields, Duration(l.now().Sub(start)))
	l.write(LevelDebug, "stage complete", fields)
}

func (l *Logger) write(level Level, msg string, fields []Field, args ...any) {
	if l == nil || l.writer == nil {
		return
	}

	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] %s", l.now().Format("15:04:05.000"), level, component, formattedMsg)
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", field.Key, field.Value))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	// Nothing useful to do if the log sink fails
	_, _ = io.WriteString(l.writer, b.String())
}

// Helper functions for common field types

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Records(value int) Field {
	return Field{Key: "records", Value: value}
}

func Brand(name string) Field {
	return Field{Key: "brand", Value: name}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d.Round(time.Microsecond)}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
