package severity

import (
	"fmt"
	"strings"
)

// Tier is a severity in the sink's fixed taxonomy. Tiers are ordered by
// rank, so Critical > Error > Warning > Information > Verbose > Suppressed.
type Tier int8

const (
	// Suppressed marks an event that must not be forwarded
	Suppressed Tier = iota
	Verbose
	Information
	Warning
	Error
	Critical
)

// Tiers lists the forwardable tiers from most to least severe.
var Tiers = [...]Tier{Critical, Error, Warning, Information, Verbose}

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case Suppressed:
		return "Suppressed"
	case Verbose:
		return "Verbose"
	case Information:
		return "Information"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Critical:
		return "Critical"
	default:
		return fmt.Sprintf("Tier(%d)", int8(t))
	}
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTier converts a tier name (or a common synonym) to a Tier
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(s) {
	case "critical", "fatal":
		return Critical, nil
	case "error":
		return Error, nil
	case "warning", "warn":
		return Warning, nil
	case "information", "info":
		return Information, nil
	case "verbose", "debug":
		return Verbose, nil
	case "suppressed", "none":
		return Suppressed, nil
	default:
		return Suppressed, fmt.Errorf("unknown severity tier %q", s)
	}
}
