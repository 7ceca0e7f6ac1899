package severity

import (
	"fmt"
	"strconv"
	"strings"
)

// SystemDefaultToken selects the hardcoded default of a tier. It is
// matched case-sensitively.
const SystemDefaultToken = "const"

// SettingKind discriminates the variants of a Setting
type SettingKind uint8

const (
	// Unset means the tier follows the canonical level of the source framework
	Unset SettingKind = iota
	// Literal is an explicit numeric threshold
	Literal
	// UseSystemDefault selects the hardcoded default threshold of the tier
	UseSystemDefault
	// Named refers to a level by name in the level registry
	Named
)

// Setting is one tier's threshold configuration, parsed once when it is
// written. The zero value is Unset.
type Setting struct {
	kind  SettingKind
	value int
	name  string
}

// ParseSetting classifies a raw configuration string.
func ParseSetting(s string) Setting {
	switch {
	case s == "":
		return Setting{}
	case s == SystemDefaultToken:
		return Setting{kind: UseSystemDefault}
	}
	// Literals share the range of core.Level
	if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32); err == nil {
		return Setting{kind: Literal, value: int(v)}
	}
	return Setting{kind: Named, name: s}
}

// LiteralSetting returns a Setting holding an explicit threshold
func LiteralSetting(v int) Setting {
	return Setting{kind: Literal, value: v}
}

// NamedSetting returns a Setting referring to a registry level
func NamedSetting(name string) Setting {
	if name == "" {
		return Setting{}
	}
	return Setting{kind: Named, name: name}
}

// SystemDefaultSetting returns the "const" Setting
func SystemDefaultSetting() Setting {
	return Setting{kind: UseSystemDefault}
}

// Kind reports which variant the setting holds
func (s Setting) Kind() SettingKind { return s.kind }

// Value is the threshold of a Literal setting
func (s Setting) Value() int { return s.value }

// Name is the level name of a Named setting
func (s Setting) Name() string { return s.name }

// String returns the raw configuration string the setting parses from.
func (s Setting) String() string {
	switch s.kind {
	case Literal:
		return strconv.Itoa(s.value)
	case UseSystemDefault:
		return SystemDefaultToken
	case Named:
		return s.name
	default:
		return ""
	}
}

// GoString implements fmt.GoStringer for readable test failures
func (s Setting) GoString() string {
	switch s.kind {
	case Literal:
		return fmt.Sprintf("Literal(%d)", s.value)
	case UseSystemDefault:
		return "UseSystemDefault"
	case Named:
		return fmt.Sprintf("Named(%q)", s.name)
	default:
		return "Unset"
	}
}

// Config holds the threshold setting of each forwardable tier.
type Config struct {
	Critical Setting
	Error    Setting
	Warn     Setting
	Info     Setting
	Verbose  Setting
}

// ParseConfig parses five raw strings, most severe first.
func ParseConfig(critical, err, warn, info, verbose string) Config {
	return Config{
		Critical: ParseSetting(critical),
		Error:    ParseSetting(err),
		Warn:     ParseSetting(warn),
		Info:     ParseSetting(info),
		Verbose:  ParseSetting(verbose),
	}
}

// Get returns the setting of a tier. Suppressed has no setting.
func (c Config) Get(t Tier) Setting {
	switch t {
	case Critical:
		return c.Critical
	case Error:
		return c.Error
	case Warning:
		return c.Warn
	case Information:
		return c.Info
	case Verbose:
		return c.Verbose
	default:
		return Setting{}
	}
}

// With returns a copy of the config with one tier replaced.
func (c Config) With(t Tier, s Setting) (Config, error) {
	switch t {
	case Critical:
		c.Critical = s
	case Error:
		c.Error = s
	case Warning:
		c.Warn = s
	case Information:
		c.Info = s
	case Verbose:
		c.Verbose = s
	default:
		return c, fmt.Errorf("tier %v has no threshold setting", t)
	}
	return c, nil
}
