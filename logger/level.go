package logger

import (
	"github.com/philipp01105/nlogbridge/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	VerboseLevel  = core.VerboseLevel
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	NoticeLevel   = core.NoticeLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	SevereLevel   = core.SevereLevel
	CriticalLevel = core.CriticalLevel
	FatalLevel    = core.FatalLevel
	PanicLevel    = core.PanicLevel
	OffLevel      = core.OffLevel
)

// ParseLevel converts a level name (case-insensitive) or decimal value to
// a Level using the well-known levels. Unknown input yields InfoLevel and
// false.
func ParseLevel(s string) (Level, bool) {
	if l, ok := core.DefaultLevelMap().Parse(s); ok {
		return l, true
	}
	return InfoLevel, false
}
