package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlogbridge/core"
)

func stdLevels() MapLevels {
	return MapLevels{
		"Fatal":    110000,
		"Critical": 90000,
		"Severe":   80000,
		"Error":    70000,
		"Warn":     60000,
		"Info":     40000,
		"Debug":    30000,
		"Verbose":  10000,
	}
}

func kinds(ds []Diagnostic) []Kind {
	out := make([]Kind, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Kind)
	}
	return out
}

func TestResolve_AllUnset(t *testing.T) {
	var c Collector
	got := Resolve(Config{}, stdLevels(), &c)

	assert.Equal(t, Thresholds{Critical: 90000, Error: 70000, Warn: 60000, Info: 40000, Verbose: 0}, got)
	assert.Empty(t, c.Filter(Warning))
	assert.Empty(t, c.Filter(Information))
	assert.Len(t, c.Filter(Verbose), 5)
}

func TestResolve_NilRegistryUsesBuiltins(t *testing.T) {
	got := Resolve(Config{}, nil, nil)
	assert.Equal(t, DefaultThresholds(), got)
}

func TestResolve_DefaultLevelMap(t *testing.T) {
	got := Resolve(Config{}, core.DefaultLevelMap(), Discard)
	assert.Equal(t, DefaultThresholds(), got)
}

func TestResolve_ConstIgnoresRegistry(t *testing.T) {
	levels := MapLevels{"Critical": 1, "Fatal": 0, "Error": 2, "Warn": 3, "Info": 4, "Verbose": 5}
	cfg := ParseConfig("const", "const", "const", "const", "const")

	var c Collector
	got := Resolve(cfg, levels, &c)

	assert.Equal(t, DefaultThresholds(), got)
	assert.Empty(t, c.Filter(Warning))
}

func TestResolve_Literals(t *testing.T) {
	cfg := ParseConfig("100000", "75000", "55000", "35000", "-100")

	var c Collector
	got := Resolve(cfg, stdLevels(), &c)

	assert.Equal(t, Thresholds{Critical: 100000, Error: 75000, Warn: 55000, Info: 35000, Verbose: -100}, got)
	assert.Empty(t, c.Filter(Warning))
	assert.Empty(t, c.Filter(Information))
}

func TestResolve_NamedLevelFound(t *testing.T) {
	cfg := ParseConfig("", "Severe", "", "Debug", "")

	got := Resolve(cfg, stdLevels(), Discard)

	assert.Equal(t, 80000, got.Error)
	assert.Equal(t, 30000, got.Info)
}

func TestResolve_NamedLevelNotFoundFallsBackToCanonical(t *testing.T) {
	var c Collector
	got := Resolve(ParseConfig("", "Bogus", "", "", ""), stdLevels(), &c)

	assert.Equal(t, 70000, got.Error)

	warnings := c.Filter(Warning)
	require.Len(t, warnings, 1)
	assert.Equal(t, NamedLevelNotFound, warnings[0].Kind)
	assert.Equal(t, "SeverityError", warnings[0].Setting)
	assert.Contains(t, warnings[0].Message, `"Bogus"`)
	assert.Contains(t, warnings[0].Message, "trying Error instead")
	assert.Empty(t, c.Filter(Information))
}

func TestResolve_NamedLevelUnresolved(t *testing.T) {
	levels := stdLevels()
	delete(levels, "Error")

	var c Collector
	got := Resolve(ParseConfig("", "Bogus", "", "", ""), levels, &c)

	assert.Equal(t, 70000, got.Error)
	assert.Equal(t, []Kind{NamedLevelNotFound}, kinds(c.Filter(Warning)))
	assert.Equal(t, []Kind{NamedLevelUnresolved}, kinds(c.Filter(Information)))
}

func TestResolve_CanonicalNameMissingReportsOnlyInformation(t *testing.T) {
	levels := stdLevels()
	delete(levels, "Warn")

	var c Collector
	got := Resolve(ParseConfig("", "", "Warn", "", ""), levels, &c)

	assert.Equal(t, 60000, got.Warn)
	assert.Empty(t, c.Filter(Warning))
	assert.Equal(t, []Kind{NamedLevelUnresolved}, kinds(c.Filter(Information)))
}

func TestResolve_CriticalFallbackTakesLowerOfCriticalAndFatal(t *testing.T) {
	tests := []struct {
		name   string
		levels MapLevels
		want   int
		tried  string
	}{
		{"both", MapLevels{"Critical": 95000, "Fatal": 85000}, 85000, "minimum of Critical or Fatal"},
		{"fatal only", MapLevels{"Fatal": 100000}, 100000, "trying Fatal instead"},
		{"critical only", MapLevels{"Critical": 92000}, 92000, "trying Critical instead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			got := Resolve(ParseConfig("Bogus", "", "", "", ""), tt.levels, &c)

			assert.Equal(t, tt.want, got.Critical)
			warnings := c.Filter(Warning)
			require.NotEmpty(t, warnings)
			assert.Equal(t, NamedLevelNotFound, warnings[0].Kind)
			assert.Contains(t, warnings[0].Message, tt.tried)
		})
	}
}

func TestResolve_UnsetCriticalConsidersFatal(t *testing.T) {
	levels := stdLevels()
	levels["Critical"] = 50000
	levels["Fatal"] = 60000

	got := Resolve(Config{}, levels, Discard)
	assert.Equal(t, 50000, got.Critical)
}

func TestResolve_ConstErrorClampedBelowLowCritical(t *testing.T) {
	levels := stdLevels()
	levels["Critical"] = 60000
	levels["Fatal"] = 80000

	var c Collector
	got := Resolve(ParseConfig("", "const", "", "", ""), levels, &c)

	assert.Equal(t, Thresholds{Critical: 60000, Error: 60000, Warn: 60000, Info: 40000, Verbose: 0}, got)

	warnings := c.Filter(Warning)
	require.Len(t, warnings, 1)
	assert.Equal(t, ThresholdInverted, warnings[0].Kind)
	assert.Equal(t, "SeverityError", warnings[0].Setting)
	assert.Contains(t, warnings[0].Message, "SeverityError=70000 can't exceed SeverityCritical=60000")

	unreachable := c.Filter(Information)
	assert.Equal(t, []Kind{ThresholdUnreachable, ThresholdUnreachable}, kinds(unreachable))

	assert.Equal(t, Critical, Classify(60000, got))
	assert.Equal(t, Information, Classify(59999, got))
}

func TestResolve_LowCriticalAndFatalClampsEverythingAbove(t *testing.T) {
	levels := stdLevels()
	levels["Critical"] = 50000
	levels["Fatal"] = 60000

	var c Collector
	got := Resolve(ParseConfig("", "const", "", "", ""), levels, &c)

	assert.Equal(t, Thresholds{Critical: 50000, Error: 50000, Warn: 50000, Info: 40000, Verbose: 0}, got)
	assert.Equal(t, []Kind{ThresholdInverted, ThresholdInverted}, kinds(c.Filter(Warning)))
	assert.Equal(t, Critical, Classify(60000, got))
}

func TestResolve_InvertedTierClampedToUpper(t *testing.T) {
	var c Collector
	got := Resolve(ParseConfig("", "", "80000", "", ""), stdLevels(), &c)

	assert.Equal(t, 70000, got.Warn)
	assert.Equal(t, []Kind{ThresholdInverted}, kinds(c.Filter(Warning)))
	assert.Equal(t, []Kind{ThresholdUnreachable}, kinds(c.Filter(Information)))
	assert.Equal(t, Error, Classify(70000, got))
}

func TestResolve_Verbose(t *testing.T) {
	tests := []struct {
		name         string
		levels       MapLevels
		info         string
		verbose      string
		want         int
		wantWarnings []Kind
		wantInfo     []Kind
	}{
		{
			name:    "unset positive canonical lowered to floor",
			levels:  stdLevels(),
			verbose: "",
			want:    0,
		},
		{
			name:    "unset negative canonical kept",
			levels:  MapLevels{"Verbose": -50},
			verbose: "",
			want:    -50,
		},
		{
			name:    "const ignores registry",
			levels:  MapLevels{"Verbose": 35000},
			verbose: "const",
			want:    0,
		},
		{
			name:    "negative literal preserved",
			levels:  stdLevels(),
			verbose: "-100",
			want:    -100,
		},
		{
			name:    "named level used verbatim",
			levels:  stdLevels(),
			verbose: "Debug",
			want:    30000,
		},
		{
			name:         "inverted literal reset to floor",
			levels:       stdLevels(),
			verbose:      "50000",
			want:         0,
			wantWarnings: []Kind{ThresholdInverted},
			wantInfo:     []Kind{VerboseFloorOverride},
		},
		{
			name:         "inverted against non-positive info clamped to info",
			levels:       stdLevels(),
			info:         "-10",
			verbose:      "5",
			want:         -10,
			wantWarnings: []Kind{ThresholdInverted},
			wantInfo:     []Kind{VerboseFloorOverride, ThresholdUnreachable},
		},
		{
			name:         "unknown name with positive canonical overridden down",
			levels:       stdLevels(),
			verbose:      "Bogus",
			want:         0,
			wantWarnings: []Kind{NamedLevelNotFound},
		},
		{
			name:         "unknown name with negative canonical",
			levels:       MapLevels{"Verbose": -20},
			verbose:      "Bogus",
			want:         -20,
			wantWarnings: []Kind{NamedLevelNotFound},
		},
		{
			name:         "unknown name without canonical",
			levels:       MapLevels{},
			verbose:      "Bogus",
			want:         0,
			wantWarnings: []Kind{NamedLevelNotFound},
			wantInfo:     []Kind{NamedLevelUnresolved},
		},
		{
			name:     "canonical name missing",
			levels:   MapLevels{},
			verbose:  "Verbose",
			want:     0,
			wantInfo: []Kind{NamedLevelUnresolved},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			got := Resolve(ParseConfig("", "", "", tt.info, tt.verbose), tt.levels, &c)

			assert.Equal(t, tt.want, got.Verbose)
			assert.Equal(t, tt.wantWarnings, nilIfEmpty(kinds(c.Filter(Warning))))
			assert.Equal(t, tt.wantInfo, nilIfEmpty(kinds(c.Filter(Information))))
		})
	}
}

func nilIfEmpty(k []Kind) []Kind {
	if len(k) == 0 {
		return nil
	}
	return k
}

func TestResolve_OverridingMessage(t *testing.T) {
	var c Collector
	Resolve(ParseConfig("", "", "", "", "Bogus"), stdLevels(), &c)

	warnings := c.Filter(Warning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "overriding Verbose down to 0")
}

func TestResolve_SuggestsCloseName(t *testing.T) {
	var c Collector
	got := Resolve(ParseConfig("Critcal", "", "", "", ""), core.DefaultLevelMap(), &c)

	assert.Equal(t, int(core.CriticalLevel), got.Critical)

	warnings := c.Filter(Warning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, `did you mean "Critical"?`)
}

func TestResolve_RegistryIsCaseInsensitiveThroughLevelMap(t *testing.T) {
	m := core.DefaultLevelMap()
	m.Register("Noisy", core.Level(45000))

	var c Collector
	got := Resolve(ParseConfig("", "", "", "noisy", ""), m, &c)

	assert.Equal(t, 45000, got.Info)
	assert.Empty(t, c.Filter(Warning))
}

func TestResolve_AlwaysOrdered(t *testing.T) {
	values := []string{"", "const", "-100", "0", "45000", "95000", "Bogus", "Debug", "Fatal", "Verbose"}
	levels := stdLevels()

	for _, cr := range values {
		for _, er := range values {
			for _, wa := range values {
				for _, in := range values {
					for _, ve := range values {
						got := Resolve(ParseConfig(cr, er, wa, in, ve), levels, Discard)
						if !got.Ordered() {
							t.Fatalf("Resolve(%q, %q, %q, %q, %q) = %v is not ordered", cr, er, wa, in, ve, got)
						}
					}
				}
			}
		}
	}
}

func TestResolve_DoesNotModifyRegistry(t *testing.T) {
	m := core.DefaultLevelMap()
	before := m.Names()

	Resolve(ParseConfig("Bogus", "Severe", "const", "", "Nope"), m, Discard)

	assert.Equal(t, before, m.Names())
}

func BenchmarkResolve(b *testing.B) {
	levels := core.DefaultLevelMap()
	cfg := ParseConfig("", "Severe", "const", "", "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Resolve(cfg, levels, Discard)
	}
}

func TestResolve_OutOfRangeIntegerIsANameLookup(t *testing.T) {
	var c Collector
	got := Resolve(ParseConfig("", "99999999999", "", "", ""), stdLevels(), &c)

	assert.Equal(t, 70000, got.Error)
	warnings := c.Filter(Warning)
	require.Len(t, warnings, 1)
	assert.Equal(t, NamedLevelNotFound, warnings[0].Kind)
	assert.Equal(t, "SeverityError", warnings[0].Setting)
}
