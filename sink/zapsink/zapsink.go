// Package zapsink forwards bridge messages into a zap.Logger.
package zapsink

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// Sink writes messages to a zap.Logger
type Sink struct {
	logger *zap.Logger
	closed atomic.Bool
}

// New wraps l. A nil logger discards everything.
func New(l *zap.Logger) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	return &Sink{logger: l}
}

// Level maps a tier onto a zap level. zap has no level between Error and
// DPanic, so Critical shares ErrorLevel and is tagged with a severity
// field instead.
func Level(t severity.Tier) zapcore.Level {
	switch t {
	case severity.Critical, severity.Error:
		return zapcore.ErrorLevel
	case severity.Warning:
		return zapcore.WarnLevel
	case severity.Information:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Write logs msg at the level for its tier
func (s *Sink) Write(_ context.Context, msg sink.Message) error {
	if s.closed.Load() {
		return sink.ErrClosed
	}

	ce := s.logger.Check(Level(msg.Severity), msg.Text)
	if ce == nil {
		return nil
	}
	if !msg.Time.IsZero() {
		ce.Time = msg.Time
	}
	if msg.LoggerName != "" {
		ce.LoggerName = msg.LoggerName
	}

	fields := make([]zap.Field, 0, len(msg.Fields)+6)
	if msg.Severity == severity.Critical {
		fields = append(fields, zap.Stringer("severity", msg.Severity))
	}
	if msg.Category != "" {
		fields = append(fields, zap.String("category", msg.Category))
	}
	if msg.User != "" {
		fields = append(fields, zap.String("user", msg.User))
	}
	if !msg.Source.IsZero() {
		fields = append(fields, zap.Object("source", source(msg.Source)))
	}
	if msg.Err != nil {
		fields = append(fields, zap.Error(msg.Err))
	}
	for _, f := range msg.Fields {
		fields = append(fields, Field(f))
	}
	ce.Write(fields...)
	return nil
}

// EndSession logs the session end and flushes the logger
func (s *Sink) EndSession(_ context.Context, status sink.Status, reason string) error {
	if s.closed.Load() {
		return sink.ErrClosed
	}
	s.logger.Info("session ended",
		zap.Stringer("status", status),
		zap.String("reason", reason),
	)
	return nil
}

// Close flushes the logger. Sync errors are ignored because console
// outputs commonly reject fsync.
func (s *Sink) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	_ = s.logger.Sync()
	return nil
}

// Field converts a framework field into a zap field
func Field(f core.Field) zap.Field {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType, core.DurationType, core.LevelType:
		return zap.Any(f.Key, f.Value())
	default:
		return zap.Any(f.Key, f.Any)
	}
}

type source sink.Source

func (s source) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if s.MethodName != "" {
		enc.AddString("method", s.MethodName)
	}
	if s.ClassName != "" {
		enc.AddString("class", s.ClassName)
	}
	if s.FileName != "" {
		enc.AddString("file", s.FileName)
	}
	if s.LineNumber > 0 {
		enc.AddInt("line", s.LineNumber)
	}
	return nil
}
