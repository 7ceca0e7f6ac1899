package severity

import "fmt"

// Hardcoded per-tier defaults, selected with the "const" token.
const (
	CriticalDefault = 90000
	ErrorDefault    = 70000
	WarnDefault     = 60000
	InfoDefault     = 40000
	// VerboseFloor is the default minimum for forwarding. Events below it
	// are suppressed, which by default drops only negative-level events.
	VerboseFloor = 0
)

// Thresholds holds the minimum level value of each forwardable tier.
// A resolved value satisfies Critical >= Error >= Warn >= Info >= Verbose.
type Thresholds struct {
	Critical int `json:"critical"`
	Error    int `json:"error"`
	Warn     int `json:"warn"`
	Info     int `json:"info"`
	Verbose  int `json:"verbose"`
}

// DefaultThresholds returns the hardcoded defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Critical: CriticalDefault,
		Error:    ErrorDefault,
		Warn:     WarnDefault,
		Info:     InfoDefault,
		Verbose:  VerboseFloor,
	}
}

// Ordered reports whether the thresholds are non-decreasing from Verbose
// up to Critical. Equal neighbours are allowed.
func (t Thresholds) Ordered() bool {
	return t.Critical >= t.Error &&
		t.Error >= t.Warn &&
		t.Warn >= t.Info &&
		t.Info >= t.Verbose
}

// Get returns the threshold of a tier. Suppressed has none and reports
// the Verbose floor.
func (t Thresholds) Get(tier Tier) int {
	switch tier {
	case Critical:
		return t.Critical
	case Error:
		return t.Error
	case Warning:
		return t.Warn
	case Information:
		return t.Info
	default:
		return t.Verbose
	}
}

func (t Thresholds) String() string {
	return fmt.Sprintf("critical=%d error=%d warn=%d info=%d verbose=%d",
		t.Critical, t.Error, t.Warn, t.Info, t.Verbose)
}

// Classify bands a level value into a tier. Lower tiers are tested first
// because low-severity events are the common case. Equal thresholds favour
// the higher tier.
func Classify(value int, t Thresholds) Tier {
	switch {
	case value < t.Verbose:
		return Suppressed
	case value < t.Info:
		return Verbose
	case value < t.Warn:
		return Information
	case value < t.Error:
		return Warning
	case value < t.Critical:
		return Error
	default:
		return Critical
	}
}
