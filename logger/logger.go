package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	name          string
	identity      string
	levels        *core.LevelMap
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	l Logger
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{l: Logger{
		level:      core.InfoLevel,
		callerSkip: 3, // GetCaller <- log <- Info/Log/... <- caller
	}}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.l.handler = h
	b.l.recycleEntry = handler.CanRecycle(h)
	return b
}

// WithLevel sets the minimum level; entries below it are discarded
// before any allocation.
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.l.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.l.fields = append(b.l.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.l.includeCaller = enabled
	return b
}

// WithName sets the logger name carried by every entry
func (b *Builder) WithName(name string) *Builder {
	b.l.name = name
	return b
}

// WithIdentity sets the user identity carried by every entry
func (b *Builder) WithIdentity(identity string) *Builder {
	b.l.identity = identity
	return b
}

// WithLevelMap sets the registry used by ParseLevel
func (b *Builder) WithLevelMap(m *core.LevelMap) *Builder {
	b.l.levels = m
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	l := b.l
	l.fields = append([]core.Field(nil), b.l.fields...)
	if l.levels == nil {
		l.levels = core.DefaultLevelMap()
	}
	return &l
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	c := *l
	c.fields = make([]core.Field, len(l.fields)+len(fields))
	copy(c.fields, l.fields)
	copy(c.fields[len(l.fields):], fields)
	return &c
}

// Named creates a child logger. Names nest with a dot:
// Named("db") on a logger named "app" yields "app.db".
func (l *Logger) Named(name string) *Logger {
	c := *l
	switch {
	case name == "":
	case l.name == "":
		c.name = name
	default:
		c.name = l.name + "." + name
	}
	return &c
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level
func (l *Logger) Level() core.Level {
	return l.level
}

// Enabled reports whether entries at level would be logged
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level && l.handler != nil
}

// ParseLevel resolves a level name through the logger's registry, or a
// decimal value.
func (l *Logger) ParseLevel(s string) (core.Level, bool) {
	return l.levels.Parse(s)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}
	l.log(level, msg, nil, fields)
}

// LogErr logs a message with an attached error at the specified level
func (l *Logger) LogErr(level core.Level, err error, msg string, fields ...core.Field) {
	if level < l.level {
		return
	}
	l.log(level, msg, err, fields)
}

// log builds a pooled entry and hands it to the handler
func (l *Logger) log(level core.Level, msg string, err error, fields []core.Field) {
	if l.handler == nil {
		return
	}

	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.Message = msg
	entry.LoggerName = l.name
	entry.Identity = l.identity
	entry.Err = err

	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	if herr := l.handler.Handle(entry); herr != nil {
		return
	}

	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(msg string, fields ...core.Field) {
	if core.VerboseLevel < l.level {
		return
	}
	l.log(core.VerboseLevel, msg, nil, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, nil, fields)
}

// Critical logs a critical message
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, msg, nil, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.FatalLevel, msg, nil, fields)
	l.Close()
	osExit(1)
}

// Panic logs a panic message and panics
func (l *Logger) Panic(msg string, fields ...core.Field) {
	l.log(core.PanicLevel, msg, nil, fields)
	panic(msg)
}

// Verbosef logs a verbose message with formatting
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if core.VerboseLevel < l.level {
		return
	}
	l.log(core.VerboseLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil, nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil, nil)
	l.Close()
	osExit(1)
}

// Panicf logs a panic message with formatting and panics
func (l *Logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log(core.PanicLevel, msg, nil, nil)
	panic(msg)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
