package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap"

	"github.com/philipp01105/nlogbridge/config"
	"github.com/philipp01105/nlogbridge/sink"
	"github.com/philipp01105/nlogbridge/sink/memsink"
	"github.com/philipp01105/nlogbridge/sink/otelsink"
	"github.com/philipp01105/nlogbridge/sink/sqlitesink"
	"github.com/philipp01105/nlogbridge/sink/zapsink"
)

// openSink creates the sink named by cfg.Sink. The otel sink emits
// through the global logger provider, so setupOTelSDK must run first.
func openSink(ctx context.Context, cfg config.Config, log *zap.Logger) (sink.Sink, error) {
	switch cfg.Sink {
	case config.SinkMemory:
		return memsink.New(), nil
	case config.SinkZap:
		return zapsink.New(log.Named("sink")), nil
	case config.SinkSQLite:
		s, err := sqlitesink.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("recording session", zap.String("path", cfg.SQLitePath), zap.String("session", s.SessionID()))
		return s, nil
	case config.SinkOTel:
		return otelsink.New(global.GetLoggerProvider()), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}
