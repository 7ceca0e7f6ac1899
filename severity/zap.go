package severity

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapDiagnostics writes diagnostics to a zap logger: Warning as Warn,
// Information as Info and Verbose as Debug.
func ZapDiagnostics(l *zap.Logger) Diagnostics {
	if l == nil {
		return Discard
	}
	return zapDiagnostics{l: l}
}

type zapDiagnostics struct {
	l *zap.Logger
}

func (z zapDiagnostics) Diagnose(d Diagnostic) {
	lvl := zapcore.DebugLevel
	switch d.Tier {
	case Warning:
		lvl = zapcore.WarnLevel
	case Information:
		lvl = zapcore.InfoLevel
	}

	if ce := z.l.Check(lvl, d.Message); ce != nil {
		ce.Write(
			zap.Stringer("kind", d.Kind),
			zap.String("setting", d.Setting),
			zap.Int("threshold", d.Value),
		)
	}
}
