package core

import (
	"math"
	"strconv"
)

// Level is the numeric severity of a log entry. Higher values are more
// severe. The scale is open-ended: applications may register their own
// named levels anywhere on it through a LevelMap.
type Level int32

// Well-known levels. Several names share a value (Debug and Fine, for
// example); the first name listed is the one used for display.
const (
	// AllLevel is the lowest possible level
	AllLevel Level = math.MinInt32
	// FinestLevel is an alias of VerboseLevel
	FinestLevel Level = 10000
	// VerboseLevel for very detailed diagnostic output
	VerboseLevel Level = 10000
	// FinerLevel is an alias of TraceLevel
	FinerLevel Level = 20000
	// TraceLevel for tracing execution flow
	TraceLevel Level = 20000
	// FineLevel is an alias of DebugLevel
	FineLevel Level = 30000
	// DebugLevel for detailed debugging information
	DebugLevel Level = 30000
	// InfoLevel for general informational messages (default)
	InfoLevel Level = 40000
	// NoticeLevel for normal but significant conditions
	NoticeLevel Level = 50000
	// WarnLevel for warning messages
	WarnLevel Level = 60000
	// ErrorLevel for error messages
	ErrorLevel Level = 70000
	// SevereLevel for severe errors
	SevereLevel Level = 80000
	// CriticalLevel for critical conditions
	CriticalLevel Level = 90000
	// AlertLevel for conditions requiring immediate action
	AlertLevel Level = 100000
	// FatalLevel for fatal messages (causes os.Exit(1))
	FatalLevel Level = 110000
	// EmergencyLevel for unusable-system conditions
	EmergencyLevel Level = 120000
	// OffLevel is the highest possible level; a logger at OffLevel logs nothing
	OffLevel Level = math.MaxInt32
)

// PanicLevel is used by Logger.Panic. It shares the value of FatalLevel.
const PanicLevel = FatalLevel

var wellKnownLevels = []struct {
	name  string
	level Level
}{
	{"Off", OffLevel},
	{"Emergency", EmergencyLevel},
	{"Fatal", FatalLevel},
	{"Alert", AlertLevel},
	{"Critical", CriticalLevel},
	{"Severe", SevereLevel},
	{"Error", ErrorLevel},
	{"Warn", WarnLevel},
	{"Notice", NoticeLevel},
	{"Info", InfoLevel},
	{"Debug", DebugLevel},
	{"Fine", FineLevel},
	{"Trace", TraceLevel},
	{"Finer", FinerLevel},
	{"Verbose", VerboseLevel},
	{"Finest", FinestLevel},
	{"All", AllLevel},
}

// String returns the upper-case name of a well-known level, or the
// decimal value for anything else. Use LevelMap.Name for registries
// with custom levels.
func (l Level) String() string {
	switch l {
	case OffLevel:
		return "OFF"
	case EmergencyLevel:
		return "EMERGENCY"
	case FatalLevel:
		return "FATAL"
	case AlertLevel:
		return "ALERT"
	case CriticalLevel:
		return "CRITICAL"
	case SevereLevel:
		return "SEVERE"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case NoticeLevel:
		return "NOTICE"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	case VerboseLevel:
		return "VERBOSE"
	case AllLevel:
		return "ALL"
	default:
		return strconv.FormatInt(int64(l), 10)
	}
}
