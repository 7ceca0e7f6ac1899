package severity

import (
	"fmt"
	"strings"
)

// Levels looks up level values by name in the source framework's
// registry. Resolve never modifies it.
type Levels interface {
	LevelValue(name string) (int, bool)
}

// Suggester is optionally implemented by Levels to offer a close match
// for a misspelled level name.
type Suggester interface {
	Suggest(name string) (string, bool)
}

// LevelsFunc adapts a lookup function to Levels
type LevelsFunc func(name string) (int, bool)

// LevelValue calls f(name)
func (f LevelsFunc) LevelValue(name string) (int, bool) { return f(name) }

// MapLevels is a fixed registry with case-sensitive names
type MapLevels map[string]int

// LevelValue returns m[name]
func (m MapLevels) LevelValue(name string) (int, bool) {
	v, ok := m[name]
	return v, ok
}

// fatalAlias is consulted alongside Critical; the lower of the two wins.
const fatalAlias = "Fatal"

// tierSpec describes how one tier is resolved.
type tierSpec struct {
	tier      Tier
	setting   string // configuration key
	name      string // canonical level name in the source framework
	canonical int    // canonical value when the registry lacks the name
	system    int    // hardcoded "const" default
}

var (
	criticalSpec = tierSpec{Critical, "SeverityCritical", "Critical", 90000, CriticalDefault}
	errorSpec    = tierSpec{Error, "SeverityError", "Error", 70000, ErrorDefault}
	warnSpec     = tierSpec{Warning, "SeverityWarn", "Warn", 60000, WarnDefault}
	infoSpec     = tierSpec{Information, "SeverityInfo", "Info", 40000, InfoDefault}
	verboseSpec  = tierSpec{Verbose, "SeverityVerbose", "Verbose", 10000, VerboseFloor}
)

// Resolve computes thresholds from cfg. It never fails: unresolvable or
// inconsistent settings are replaced by defaults and reported through
// diag. Tiers are processed from most to least severe and each one is
// repaired against the tier above it before moving on.
func Resolve(cfg Config, levels Levels, diag Diagnostics) Thresholds {
	if levels == nil {
		levels = MapLevels(nil)
	}
	if diag == nil {
		diag = Discard
	}
	r := resolver{levels: levels, diag: diag}

	var t Thresholds
	t.Critical = r.tier(criticalSpec, cfg.Critical)
	r.confirm(criticalSpec, t.Critical)

	t.Error = r.repair(errorSpec, r.tier(errorSpec, cfg.Error), criticalSpec, t.Critical)
	t.Warn = r.repair(warnSpec, r.tier(warnSpec, cfg.Warn), errorSpec, t.Error)
	t.Info = r.repair(infoSpec, r.tier(infoSpec, cfg.Info), warnSpec, t.Warn)
	t.Verbose = r.repairVerbose(r.verbose(cfg.Verbose), t.Info)

	return t
}

type resolver struct {
	levels Levels
	diag   Diagnostics
}

func (r resolver) emit(tier Tier, kind Kind, s tierSpec, value int, format string, args ...any) {
	r.diag.Diagnose(Diagnostic{
		Tier:    tier,
		Kind:    kind,
		Setting: s.setting,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// canonical is the registry's value for the tier's well-known name, with
// Fatal considered for Critical, or the built-in value when neither exists.
func (r resolver) canonical(s tierSpec) int {
	if v, ok, _ := r.fallback(s); ok {
		return v
	}
	return s.canonical
}

// fallback looks up the tier's canonical name. For Critical it also
// looks up Fatal and keeps the lower value. The returned label names what
// was tried, for diagnostics.
func (r resolver) fallback(s tierSpec) (int, bool, string) {
	v, ok := r.levels.LevelValue(s.name)
	if s.tier != Critical {
		return v, ok, s.name
	}

	fatal, fok := r.levels.LevelValue(fatalAlias)
	switch {
	case ok && fok:
		return min(v, fatal), true, "minimum of Critical or Fatal"
	case fok:
		return fatal, true, fatalAlias
	default:
		return v, ok, s.name
	}
}

func (r resolver) tier(s tierSpec, setting Setting) int {
	switch setting.Kind() {
	case Unset:
		return r.canonical(s)
	case Literal:
		return setting.Value()
	case UseSystemDefault:
		return s.system
	}

	name := setting.Name()
	if v, ok := r.levels.LevelValue(name); ok {
		return v
	}

	missing := s.name
	if s.tier == Critical {
		missing = "Critical or Fatal"
	}

	if !strings.EqualFold(name, s.name) {
		v, ok, tried := r.fallback(s)
		r.emit(Warning, NamedLevelNotFound, s, v,
			"invalid configuration value %q for %s: named level not found%s (trying %s instead)",
			name, s.setting, r.suggestion(name), tried)
		if ok {
			return v
		}
	}

	r.emit(Information, NamedLevelUnresolved, s, s.canonical,
		"could not resolve configuration value %q for %s: no level named %s found (defaulting to %d)",
		name, s.setting, missing, s.canonical)
	return s.canonical
}

// verbose resolves the raw Verbose threshold. Unlike the other tiers, a
// positive canonical value is lowered to VerboseFloor, so by default only
// negative-level events are suppressed. A negative canonical value is kept.
func (r resolver) verbose(setting Setting) int {
	s := verboseSpec
	switch setting.Kind() {
	case Unset:
		return min(r.canonical(s), VerboseFloor)
	case Literal:
		return setting.Value()
	case UseSystemDefault:
		return VerboseFloor
	}

	name := setting.Name()
	if v, ok := r.levels.LevelValue(name); ok {
		return v
	}

	if strings.EqualFold(name, s.name) {
		r.emit(Information, NamedLevelUnresolved, s, VerboseFloor,
			"could not resolve configuration value %q for %s: no level named %s found (defaulting to %d)",
			name, s.setting, s.name, VerboseFloor)
		return VerboseFloor
	}

	v, ok := r.levels.LevelValue(s.name)
	switch {
	case !ok:
		r.emit(Warning, NamedLevelNotFound, s, VerboseFloor,
			"invalid configuration value %q for %s: named level not found%s (using %s instead)",
			name, s.setting, r.suggestion(name), s.name)
		r.emit(Information, NamedLevelUnresolved, s, VerboseFloor,
			"could not resolve configuration value %q for %s: no level named %s found (defaulting to %d)",
			name, s.setting, s.name, VerboseFloor)
		return VerboseFloor
	case v > VerboseFloor:
		r.emit(Warning, NamedLevelNotFound, s, VerboseFloor,
			"invalid configuration value %q for %s: named level not found%s (overriding %s down to %d)",
			name, s.setting, r.suggestion(name), s.name, VerboseFloor)
		return VerboseFloor
	default:
		r.emit(Warning, NamedLevelNotFound, s, v,
			"invalid configuration value %q for %s: named level not found%s (using %s instead)",
			name, s.setting, r.suggestion(name), s.name)
		return v
	}
}

func (r resolver) suggestion(name string) string {
	sg, ok := r.levels.(Suggester)
	if !ok {
		return ""
	}
	if match, ok := sg.Suggest(name); ok {
		return fmt.Sprintf(", did you mean %q?", match)
	}
	return ""
}

// repair lowers a tier that exceeds the tier above it.
func (r resolver) repair(s tierSpec, v int, upper tierSpec, limit int) int {
	if v > limit {
		r.emit(Warning, ThresholdInverted, s, limit,
			"improper severity threshold configuration: %s=%d can't exceed %s=%d",
			s.setting, v, upper.setting, limit)
		v = limit
	}
	if v == limit {
		r.emit(Information, ThresholdUnreachable, s, v,
			"unusual severity threshold configuration: %s is not below %s and can thus never occur",
			s.setting, upper.setting)
	}
	r.confirm(s, v)
	return v
}

// repairVerbose handles an inverted Verbose threshold differently from the
// other tiers: a mis-set floor silently drops events, so it is reset to
// VerboseFloor rather than raised to Info, unless Info is itself at or
// below the floor.
func (r resolver) repairVerbose(v, info int) int {
	s := verboseSpec
	if v > info {
		r.emit(Warning, ThresholdInverted, s, v,
			"improper severity threshold configuration: %s=%d can't exceed %s=%d",
			s.setting, v, infoSpec.setting, info)
		if info > VerboseFloor {
			v = VerboseFloor
		} else {
			v = info
		}
		r.emit(Information, VerboseFloorOverride, s, v,
			"minimum threshold for forwarding events overridden to %d", v)
	}
	if v == info {
		r.emit(Information, ThresholdUnreachable, s, v,
			"unusual severity threshold configuration: %s is not below %s and can thus never occur",
			s.setting, infoSpec.setting)
	}
	r.confirm(s, v)
	return v
}

func (r resolver) confirm(s tierSpec, v int) {
	r.emit(Verbose, ThresholdResolved, s, v, "configuration of %s threshold set to %d", s.setting, v)
}
