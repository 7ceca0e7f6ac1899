package severity

import (
	"sync"
	"sync/atomic"
)

// Cache owns a threshold Config and the Thresholds resolved from it.
//
// Writes replace the parsed config under a mutex and drop the published
// snapshot. Readers load the snapshot without locking; the first reader
// after a write resolves the config under the same mutex and publishes
// the result, so resolution is atomic with respect to config writes and
// runs (and reports diagnostics) once per change.
type Cache struct {
	mu     sync.Mutex
	cfg    Config
	levels Levels
	diag   Diagnostics

	snapshot atomic.Pointer[Thresholds]
}

// NewCache returns a Cache with every tier unset. levels and diag may be
// nil.
func NewCache(levels Levels, diag Diagnostics) *Cache {
	if diag == nil {
		diag = Discard
	}
	return &Cache{levels: levels, diag: diag}
}

// Set parses raw and stores it as the setting of tier t.
func (c *Cache) Set(t Tier, raw string) error {
	return c.SetSetting(t, ParseSetting(raw))
}

// SetSetting stores s as the setting of tier t.
func (c *Cache) SetSetting(t Tier, s Setting) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.cfg.With(t, s)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.snapshot.Store(nil)
	return nil
}

// SetConfig replaces the whole config.
func (c *Cache) SetConfig(cfg Config) {
	c.mu.Lock()
	c.cfg = cfg
	c.snapshot.Store(nil)
	c.mu.Unlock()
}

// Config returns the current config.
func (c *Cache) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Stale reports whether the config changed since the last resolution.
func (c *Cache) Stale() bool {
	return c.snapshot.Load() == nil
}

// Thresholds returns the thresholds for the current config, resolving
// them first if the config changed.
func (c *Cache) Thresholds() Thresholds {
	if t := c.snapshot.Load(); t != nil {
		return *t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t := c.snapshot.Load(); t != nil {
		return *t
	}
	t := Resolve(c.cfg, c.levels, c.diag)
	c.snapshot.Store(&t)
	return t
}

// Classify returns the tier of a level value under the current config.
func (c *Cache) Classify(value int) Tier {
	return Classify(value, c.Thresholds())
}
