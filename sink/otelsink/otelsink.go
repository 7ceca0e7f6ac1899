// Package otelsink emits bridge messages as OpenTelemetry log records.
package otelsink

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.40.0"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// ScopeName is the instrumentation scope of emitted records
const ScopeName = "github.com/philipp01105/nlogbridge"

// Attribute keys set on every record besides the semantic conventions
const (
	CategoryKey   = "nlog.category"
	LoggerNameKey = "nlog.logger"
	StatusKey     = "nlog.session.status"
	ReasonKey     = "nlog.session.reason"
)

type flusher interface {
	ForceFlush(ctx context.Context) error
}

// Sink emits records through a log.Logger
type Sink struct {
	provider log.LoggerProvider
	logger   log.Logger
	closed   atomic.Bool
}

// New returns a Sink emitting through provider
func New(provider log.LoggerProvider) *Sink {
	return &Sink{
		provider: provider,
		logger:   provider.Logger(ScopeName),
	}
}

// Severity maps a tier onto an OpenTelemetry severity
func Severity(t severity.Tier) log.Severity {
	switch t {
	case severity.Critical:
		return log.SeverityFatal
	case severity.Error:
		return log.SeverityError
	case severity.Warning:
		return log.SeverityWarn
	case severity.Information:
		return log.SeverityInfo
	case severity.Verbose:
		return log.SeverityDebug
	default:
		return log.SeverityUndefined
	}
}

// Write emits msg as one log record
func (s *Sink) Write(ctx context.Context, msg sink.Message) error {
	if s.closed.Load() {
		return sink.ErrClosed
	}

	var r log.Record
	r.SetTimestamp(msg.Time)
	r.SetObservedTimestamp(time.Now())
	r.SetSeverity(Severity(msg.Severity))
	r.SetSeverityText(msg.Severity.String())
	r.SetBody(log.StringValue(msg.Text))

	attrs := make([]log.KeyValue, 0, len(msg.Fields)+8)
	if msg.Category != "" {
		attrs = append(attrs, log.String(CategoryKey, msg.Category))
	}
	if msg.LoggerName != "" {
		attrs = append(attrs, log.String(LoggerNameKey, msg.LoggerName))
	}
	if msg.User != "" {
		attrs = append(attrs, log.String(string(semconv.EnduserIDKey), msg.User))
	}
	attrs = appendSource(attrs, msg.Source)
	if msg.Err != nil {
		attrs = append(attrs,
			log.String(string(semconv.ExceptionTypeKey), fmt.Sprintf("%T", msg.Err)),
			log.String(string(semconv.ExceptionMessageKey), msg.Err.Error()),
		)
	}
	for _, f := range msg.Fields {
		attrs = append(attrs, KeyValue(f))
	}
	r.AddAttributes(attrs...)

	s.logger.Emit(ctx, r)
	return nil
}

func appendSource(attrs []log.KeyValue, src sink.Source) []log.KeyValue {
	if fn := functionName(src); fn != "" {
		attrs = append(attrs, log.String(string(semconv.CodeFunctionNameKey), fn))
	}
	if src.FileName != "" {
		attrs = append(attrs, log.String(string(semconv.CodeFilePathKey), src.FileName))
	}
	if src.LineNumber > 0 {
		attrs = append(attrs, log.Int(string(semconv.CodeLineNumberKey), src.LineNumber))
	}
	return attrs
}

// functionName returns the fully qualified function name, class first.
func functionName(src sink.Source) string {
	switch {
	case src.MethodName == "":
		return ""
	case src.ClassName == "":
		return src.MethodName
	default:
		return src.ClassName + "." + src.MethodName
	}
}

// EndSession emits an Info record announcing the session end
func (s *Sink) EndSession(ctx context.Context, status sink.Status, reason string) error {
	if s.closed.Load() {
		return sink.ErrClosed
	}

	var r log.Record
	now := time.Now()
	r.SetTimestamp(now)
	r.SetObservedTimestamp(now)
	r.SetSeverity(log.SeverityInfo)
	r.SetSeverityText(severity.Information.String())
	r.SetBody(log.StringValue("session ended"))
	r.AddAttributes(
		log.String(StatusKey, status.String()),
		log.String(ReasonKey, reason),
	)
	s.logger.Emit(ctx, r)
	return nil
}

// Close flushes the provider when it supports flushing. The provider is
// owned by the caller and is not shut down.
func (s *Sink) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if f, ok := s.provider.(flusher); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return f.ForceFlush(ctx)
	}
	return nil
}

// KeyValue converts a framework field into a log attribute
func KeyValue(f core.Field) log.KeyValue {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return log.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return log.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return log.Float64(f.Key, f.Float64)
	case core.BoolType:
		return log.Bool(f.Key, f.Int64 == 1)
	default:
		return log.String(f.Key, f.StringValue())
	}
}
