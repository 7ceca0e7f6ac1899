package zapsink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

var _ sink.Sink = (*Sink)(nil)

func newObserved(level zapcore.Level) (*Sink, *observer.ObservedLogs) {
	c, logs := observer.New(level)
	return New(zap.New(c)), logs
}

func TestLevel(t *testing.T) {
	tests := []struct {
		tier severity.Tier
		want zapcore.Level
	}{
		{severity.Critical, zapcore.ErrorLevel},
		{severity.Error, zapcore.ErrorLevel},
		{severity.Warning, zapcore.WarnLevel},
		{severity.Information, zapcore.InfoLevel},
		{severity.Verbose, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.tier), tt.tier.String())
	}
}

func TestSink_Write(t *testing.T) {
	s, logs := newObserved(zapcore.DebugLevel)
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	err := s.Write(context.Background(), sink.Message{
		Time:       ts,
		Severity:   severity.Critical,
		Category:   sink.DefaultCategory,
		LoggerName: "orders",
		User:       "alice",
		Source:     sink.Source{MethodName: "Charge", FileName: "pay.go", LineNumber: 9},
		Text:       "payment rejected",
		Err:        boom,
		Fields:     []core.Field{{Key: "amount", Type: core.IntType, Int64: 42}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())

	e := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, e.Level)
	assert.Equal(t, "payment rejected", e.Message)
	assert.Equal(t, ts, e.Time)
	assert.Equal(t, "orders", e.LoggerName)

	ctx := e.ContextMap()
	assert.Equal(t, "Critical", ctx["severity"])
	assert.Equal(t, "NLog", ctx["category"])
	assert.Equal(t, "alice", ctx["user"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, int64(42), ctx["amount"])
	assert.Equal(t, map[string]interface{}{"method": "Charge", "file": "pay.go", "line": int64(9)}, ctx["source"])
}

func TestSink_ErrorHasNoSeverityField(t *testing.T) {
	s, logs := newObserved(zapcore.DebugLevel)
	require.NoError(t, s.Write(context.Background(), sink.Message{Severity: severity.Error, Text: "x"}))

	_, ok := logs.All()[0].ContextMap()["severity"]
	assert.False(t, ok)
}

func TestSink_LevelFiltered(t *testing.T) {
	s, logs := newObserved(zapcore.InfoLevel)
	require.NoError(t, s.Write(context.Background(), sink.Message{Severity: severity.Verbose, Text: "quiet"}))
	assert.Zero(t, logs.Len())
}

func TestSink_EndSessionAndClose(t *testing.T) {
	s, logs := newObserved(zapcore.DebugLevel)
	ctx := context.Background()

	require.NoError(t, s.EndSession(ctx, sink.Normal, "closed"))
	got := logs.FilterMessage("session ended").All()
	require.Len(t, got, 1)
	assert.Equal(t, "Normal", got[0].ContextMap()["status"])
	assert.Equal(t, "closed", got[0].ContextMap()["reason"])

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Write(ctx, sink.Message{}), sink.ErrClosed)
}

func TestNew_Nil(t *testing.T) {
	s := New(nil)
	assert.NoError(t, s.Write(context.Background(), sink.Message{Text: "x"}))
}
