package bridge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/philipp01105/nlogbridge/severity"
)

// ErrUnknownSetting is returned by Set for names that are not part of the
// configuration surface
var ErrUnknownSetting = errors.New("bridge: unknown setting")

// Canonical setting names accepted by Handler.Set
const (
	SettingSeverityCritical  = "SeverityCritical"
	SettingSeverityError     = "SeverityError"
	SettingSeverityWarn      = "SeverityWarn"
	SettingSeverityInfo      = "SeverityInfo"
	SettingSeverityVerbose   = "SeverityVerbose"
	SettingEndSessionOnClose = "EndSessionOnClose"
)

// settingAliases maps lower-cased names and aliases to canonical names
var settingAliases = map[string]string{
	"severitycritical":          SettingSeverityCritical,
	"severityfatal":             SettingSeverityCritical,
	"severityerror":             SettingSeverityError,
	"severitywarn":              SettingSeverityWarn,
	"severitywarning":           SettingSeverityWarn,
	"severityinfo":              SettingSeverityInfo,
	"severityinformation":       SettingSeverityInfo,
	"severityverbose":           SettingSeverityVerbose,
	"severitydebug":             SettingSeverityVerbose,
	"endsessiononclose":         SettingEndSessionOnClose,
	"endsessiononappenderclose": SettingEndSessionOnClose,
}

var settingTiers = map[string]severity.Tier{
	SettingSeverityCritical: severity.Critical,
	SettingSeverityError:    severity.Error,
	SettingSeverityWarn:     severity.Warning,
	SettingSeverityInfo:     severity.Information,
	SettingSeverityVerbose:  severity.Verbose,
}

// SettingNames returns the canonical setting names
func SettingNames() []string {
	return []string{
		SettingSeverityCritical,
		SettingSeverityError,
		SettingSeverityWarn,
		SettingSeverityInfo,
		SettingSeverityVerbose,
		SettingEndSessionOnClose,
	}
}

// CanonicalSetting resolves a setting name or alias, ignoring case
func CanonicalSetting(name string) (string, bool) {
	c, ok := settingAliases[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Settings holds the raw severity threshold strings. Each is empty
// (unset), an integer, "const", or a level name.
type Settings struct {
	Critical string `json:"critical"`
	Error    string `json:"error"`
	Warn     string `json:"warn"`
	Info     string `json:"info"`
	Verbose  string `json:"verbose"`
}

// Config parses the raw strings
func (s Settings) Config() severity.Config {
	return severity.ParseConfig(s.Critical, s.Error, s.Warn, s.Info, s.Verbose)
}

// SettingsFromConfig returns the raw strings of cfg
func SettingsFromConfig(cfg severity.Config) Settings {
	return Settings{
		Critical: cfg.Critical.String(),
		Error:    cfg.Error.String(),
		Warn:     cfg.Warn.String(),
		Info:     cfg.Info.String(),
		Verbose:  cfg.Verbose.String(),
	}
}

// Set changes one setting by name. Severity settings take effect at the
// next classification.
func (h *Handler) Set(name, value string) error {
	canonical, ok := CanonicalSetting(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}

	if canonical == SettingEndSessionOnClose {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("bridge: %s: %w", canonical, err)
		}
		h.endSession.Store(b)
		return nil
	}
	return h.cache.Set(settingTiers[canonical], value)
}

// Get returns the current raw value of a setting
func (h *Handler) Get(name string) (string, error) {
	canonical, ok := CanonicalSetting(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	if canonical == SettingEndSessionOnClose {
		return strconv.FormatBool(h.endSession.Load()), nil
	}
	return h.cache.Config().Get(settingTiers[canonical]).String(), nil
}

// Settings returns the raw severity settings
func (h *Handler) Settings() Settings {
	return SettingsFromConfig(h.cache.Config())
}

// SetSettings replaces all severity settings at once
func (h *Handler) SetSettings(s Settings) {
	h.cache.SetConfig(s.Config())
}

// EndSessionOnClose reports whether Close ends the sink session
func (h *Handler) EndSessionOnClose() bool {
	return h.endSession.Load()
}
