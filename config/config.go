package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/philipp01105/nlogbridge/bridge"
	"github.com/philipp01105/nlogbridge/handler"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// Sink kinds
const (
	SinkMemory = "memory"
	SinkZap    = "zap"
	SinkSQLite = "sqlite"
	SinkOTel   = "otel"
)

// SeverityConfig holds the raw threshold strings
type SeverityConfig struct {
	Critical string `mapstructure:"critical"`
	Error    string `mapstructure:"error"`
	Warn     string `mapstructure:"warn"`
	Info     string `mapstructure:"info"`
	Verbose  string `mapstructure:"verbose"`
}

// Settings converts to the bridge settings
func (s SeverityConfig) Settings() bridge.Settings {
	return bridge.Settings{
		Critical: s.Critical,
		Error:    s.Error,
		Warn:     s.Warn,
		Info:     s.Info,
		Verbose:  s.Verbose,
	}
}

// Config is the bridge configuration as loaded from file and environment
type Config struct {
	Severity          SeverityConfig    `mapstructure:"severity"`
	EndSessionOnClose bool              `mapstructure:"endsessiononclose"`
	Category          string            `mapstructure:"category"`
	Sink              string            `mapstructure:"sink"`
	SQLitePath        string            `mapstructure:"sqlitepath"`
	AdminAddr         string            `mapstructure:"adminaddr"`
	Async             bool              `mapstructure:"async"`
	BufferSize        int               `mapstructure:"buffersize"`
	OverflowPolicy    map[string]string `mapstructure:"overflowpolicy"`
	BlockTimeout      time.Duration     `mapstructure:"blocktimeout"`
	DrainTimeout      time.Duration     `mapstructure:"draintimeout"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Category:     sink.DefaultCategory,
		Sink:         SinkZap,
		SQLitePath:   "nlogbridge.db",
		AdminAddr:    ":8080",
		BufferSize:   1000,
		BlockTimeout: 100 * time.Millisecond,
		DrainTimeout: 5 * time.Second,
	}
}

// Load reads the YAML file at path (skipped when empty) over the
// defaults, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Parse decodes a YAML document over the defaults. Keys are matched
// ignoring case, dashes and underscores, and the severity aliases
// (fatal, warning, information, debug) are accepted, both inside the
// severity section and as flat SeverityX keys.
func Parse(data []byte) (Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}
	norm, err := normalize(raw)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(norm); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "_", "")
	return strings.ReplaceAll(k, "-", "")
}

// severityKeys maps tier keys and their aliases to the struct keys
var severityKeys = map[string]string{
	"critical":    "critical",
	"fatal":       "critical",
	"error":       "error",
	"warn":        "warn",
	"warning":     "warn",
	"info":        "info",
	"information": "info",
	"verbose":     "verbose",
	"debug":       "verbose",
}

// flatKeys maps canonical bridge setting names to severity keys
var flatKeys = map[string]string{
	bridge.SettingSeverityCritical: "critical",
	bridge.SettingSeverityError:    "error",
	bridge.SettingSeverityWarn:     "warn",
	bridge.SettingSeverityInfo:     "info",
	bridge.SettingSeverityVerbose:  "verbose",
}

func normalize(raw map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(raw))
	sev := map[string]interface{}{}

	setSeverity := func(key string, v interface{}, from string) error {
		if _, dup := sev[key]; dup {
			return fmt.Errorf("severity %s set twice (via %q)", key, from)
		}
		sev[key] = v
		return nil
	}

	for k, v := range raw {
		if name, ok := bridge.CanonicalSetting(k); ok {
			if key, ok := flatKeys[name]; ok {
				if err := setSeverity(key, v, k); err != nil {
					return nil, err
				}
				continue
			}
			out["endsessiononclose"] = v
			continue
		}

		nk := normalizeKey(k)
		if nk != "severity" {
			out[nk] = v
			continue
		}
		section, err := stringMap(v)
		if err != nil {
			return nil, fmt.Errorf("severity: %w", err)
		}
		for sk, sv := range section {
			key, ok := severityKeys[normalizeKey(sk)]
			if !ok {
				return nil, fmt.Errorf("severity: unknown tier %q", sk)
			}
			if err := setSeverity(key, sv, sk); err != nil {
				return nil, err
			}
		}
	}

	if len(sev) > 0 {
		out["severity"] = sev
	}
	return out, nil
}

func stringMap(v interface{}) (map[string]interface{}, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return m, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
}

// Environment variables read by ApplyEnv
const (
	EnvSeverityCritical  = "NLOG_SEVERITY_CRITICAL"
	EnvSeverityError     = "NLOG_SEVERITY_ERROR"
	EnvSeverityWarn      = "NLOG_SEVERITY_WARN"
	EnvSeverityInfo      = "NLOG_SEVERITY_INFO"
	EnvSeverityVerbose   = "NLOG_SEVERITY_VERBOSE"
	EnvEndSessionOnClose = "NLOG_END_SESSION_ON_CLOSE"
	EnvSink              = "NLOG_SINK"
	EnvSQLitePath        = "NLOG_SQLITE_PATH"
	EnvAdminAddr         = "NLOG_ADMIN_ADDR"
)

// ApplyEnv overrides fields from the environment. A variable that is set
// to the empty string clears a severity setting.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		env string
		dst *string
	}{
		{EnvSeverityCritical, &c.Severity.Critical},
		{EnvSeverityError, &c.Severity.Error},
		{EnvSeverityWarn, &c.Severity.Warn},
		{EnvSeverityInfo, &c.Severity.Info},
		{EnvSeverityVerbose, &c.Severity.Verbose},
		{EnvSink, &c.Sink},
		{EnvSQLitePath, &c.SQLitePath},
		{EnvAdminAddr, &c.AdminAddr},
	}
	for _, s := range strs {
		if v, ok := lookup(s.env); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvEndSessionOnClose); ok {
		var b bool
		if err := mapstructure.WeakDecode(v, &b); err != nil {
			return fmt.Errorf("%s: %w", EnvEndSessionOnClose, err)
		}
		c.EndSessionOnClose = b
	}
	return nil
}

// ValidationError describes one invalid field
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s=%q: %s", e.Field, e.Value, e.Message)
}

// Validate checks the configuration and returns every problem found,
// combined with multierr.
func (c Config) Validate() error {
	var err error
	invalid := func(field, value, msg string) {
		err = multierr.Append(err, ValidationError{Field: field, Value: value, Message: msg})
	}

	switch c.Sink {
	case SinkMemory, SinkZap, SinkOTel:
	case SinkSQLite:
		if c.SQLitePath == "" {
			invalid("sqlitePath", c.SQLitePath, "required for the sqlite sink")
		}
	default:
		invalid("sink", c.Sink, "must be one of memory, zap, sqlite, otel")
	}
	if c.Async && c.BufferSize <= 0 {
		invalid("bufferSize", fmt.Sprint(c.BufferSize), "must be positive")
	}
	if c.BlockTimeout < 0 {
		invalid("blockTimeout", c.BlockTimeout.String(), "must not be negative")
	}
	if c.DrainTimeout < 0 {
		invalid("drainTimeout", c.DrainTimeout.String(), "must not be negative")
	}
	for tier, policy := range c.OverflowPolicy {
		if t, terr := severity.ParseTier(tier); terr != nil || t == severity.Suppressed {
			invalid("overflowPolicy", tier, "unknown tier")
		}
		if _, ok := handler.ParseOverflowPolicy(policy); !ok {
			invalid("overflowPolicy."+tier, policy, "must be DropNewest, DropOldest or Block")
		}
	}
	return err
}

// OverflowPolicies converts the per-tier policy names. Nil means the
// bridge default.
func (c Config) OverflowPolicies() map[severity.Tier]handler.OverflowPolicy {
	if len(c.OverflowPolicy) == 0 {
		return nil
	}
	out := handler.DefaultTierPolicy()
	for tier, policy := range c.OverflowPolicy {
		t, err := severity.ParseTier(tier)
		if err != nil {
			continue
		}
		if p, ok := handler.ParseOverflowPolicy(policy); ok {
			out[t] = p
		}
	}
	return out
}

// BridgeConfig returns a bridge configuration forwarding to s
func (c Config) BridgeConfig(s sink.Sink, diag severity.Diagnostics) bridge.Config {
	return bridge.Config{
		Sink:              s,
		Severity:          c.Severity.Settings(),
		Category:          c.Category,
		EndSessionOnClose: c.EndSessionOnClose,
		Diagnostics:       diag,
		Async:             c.Async,
		BufferSize:        c.BufferSize,
		OverflowPolicy:    c.OverflowPolicies(),
		BlockTimeout:      c.BlockTimeout,
		DrainTimeout:      c.DrainTimeout,
	}
}

// Apply pushes the severity settings and EndSessionOnClose into a
// running bridge through its configuration surface.
func (c Config) Apply(h *bridge.Handler) error {
	s := c.Severity
	values := []struct{ name, value string }{
		{bridge.SettingSeverityCritical, s.Critical},
		{bridge.SettingSeverityError, s.Error},
		{bridge.SettingSeverityWarn, s.Warn},
		{bridge.SettingSeverityInfo, s.Info},
		{bridge.SettingSeverityVerbose, s.Verbose},
		{bridge.SettingEndSessionOnClose, fmt.Sprint(c.EndSessionOnClose)},
	}
	var err error
	for _, v := range values {
		err = multierr.Append(err, h.Set(v.name, v.value))
	}
	return err
}
