package core

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LevelMap is a registry of named levels. Names are matched
// case-insensitively. It is safe for concurrent use.
type LevelMap struct {
	mu     sync.RWMutex
	byName map[string]namedLevel
	order  []string // registration order, spelling as registered
}

type namedLevel struct {
	name  string
	level Level
}

// NewLevelMap returns an empty registry.
func NewLevelMap() *LevelMap {
	return &LevelMap{byName: make(map[string]namedLevel)}
}

// DefaultLevelMap returns a new registry holding the well-known levels.
func DefaultLevelMap() *LevelMap {
	m := NewLevelMap()
	for _, l := range wellKnownLevels {
		m.Register(l.name, l.level)
	}
	return m
}

// Register adds or redefines a named level.
func (m *LevelMap) Register(name string, level Level) {
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byName[key]; !ok {
		m.order = append(m.order, name)
	}
	m.byName[key] = namedLevel{name: name, level: level}
}

// Lookup returns the value of a named level.
func (m *LevelMap) Lookup(name string) (Level, bool) {
	if name == "" {
		return 0, false
	}

	m.mu.RLock()
	nl, ok := m.byName[strings.ToLower(name)]
	m.mu.RUnlock()

	return nl.level, ok
}

// LevelValue is Lookup widened to int, for consumers that are not tied
// to this package's Level type.
func (m *LevelMap) LevelValue(name string) (int, bool) {
	l, ok := m.Lookup(name)
	return int(l), ok
}

// Name returns the display name of a level value: the first registered
// name carrying that value, or the decimal value when none does.
func (m *LevelMap) Name(level Level) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.order {
		if m.byName[strings.ToLower(name)].level == level {
			return name
		}
	}
	return level.String()
}

// Names returns all registered names in registration order.
func (m *LevelMap) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.order)
}

// Suggest returns the registered name closest to name, for "did you mean"
// hints on misspelled configuration values.
func (m *LevelMap) Suggest(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	matches := fuzzy.RankFindNormalizedFold(name, m.Names())
	if len(matches) == 0 {
		return "", false
	}
	slices.SortStableFunc(matches, func(a, b fuzzy.Rank) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return matches[0].Target, true
}

// Parse resolves s as a level name, falling back to a decimal value.
func (m *LevelMap) Parse(s string) (Level, bool) {
	if l, ok := m.Lookup(s); ok {
		return l, true
	}
	return parseNumericLevel(s)
}

func parseNumericLevel(s string) (Level, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return Level(v), true
}
