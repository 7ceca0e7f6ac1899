package severity

import (
	"slices"
	"sync"
)

// Kind identifies the condition a Diagnostic reports
type Kind uint8

const (
	// NamedLevelNotFound: a configured level name is not in the registry
	// and a fallback name is tried instead.
	NamedLevelNotFound Kind = iota
	// NamedLevelUnresolved: neither the configured name nor any fallback
	// resolved; the built-in canonical value is used.
	NamedLevelUnresolved
	// ThresholdInverted: a tier exceeded the next more severe tier and
	// was lowered.
	ThresholdInverted
	// ThresholdUnreachable: a tier equals the next more severe tier, so
	// events are never classified into it.
	ThresholdUnreachable
	// VerboseFloorOverride: the Verbose threshold was reset after an
	// inversion against Info.
	VerboseFloorOverride
	// ThresholdResolved confirms the final value of a tier.
	ThresholdResolved
)

func (k Kind) String() string {
	switch k {
	case NamedLevelNotFound:
		return "NamedLevelNotFound"
	case NamedLevelUnresolved:
		return "NamedLevelUnresolved"
	case ThresholdInverted:
		return "ThresholdInverted"
	case ThresholdUnreachable:
		return "ThresholdUnreachable"
	case VerboseFloorOverride:
		return "VerboseFloorOverride"
	case ThresholdResolved:
		return "ThresholdResolved"
	default:
		return "Unknown"
	}
}

// Diagnostic is a self-report from threshold resolution. Tier is Warning
// for real misconfiguration, Information for unusual but legal results and
// Verbose for routine confirmation.
type Diagnostic struct {
	Tier    Tier
	Kind    Kind
	Setting string // configuration key, e.g. "SeverityError"
	Value   int    // threshold in effect after the condition was handled
	Message string
}

// Diagnostics receives diagnostics. Delivery is fire-and-forget.
type Diagnostics interface {
	Diagnose(Diagnostic)
}

// DiagnosticsFunc adapts a function to Diagnostics
type DiagnosticsFunc func(Diagnostic)

// Diagnose calls f(d)
func (f DiagnosticsFunc) Diagnose(d Diagnostic) { f(d) }

// Discard drops every diagnostic
var Discard Diagnostics = DiagnosticsFunc(func(Diagnostic) {})

// Collector records diagnostics in memory. It is safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	diag []Diagnostic
}

// Diagnose records d
func (c *Collector) Diagnose(d Diagnostic) {
	c.mu.Lock()
	c.diag = append(c.diag, d)
	c.mu.Unlock()
}

// All returns the recorded diagnostics in order
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.diag)
}

// Filter returns the recorded diagnostics of the given tier
func (c *Collector) Filter(t Tier) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.All() {
		if d.Tier == t {
			out = append(out, d)
		}
	}
	return out
}

// Reset discards the recorded diagnostics
func (c *Collector) Reset() {
	c.mu.Lock()
	c.diag = nil
	c.mu.Unlock()
}
