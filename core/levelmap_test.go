package core

import (
	"sync"
	"testing"
)

func TestDefaultLevelMap_Lookup(t *testing.T) {
	m := DefaultLevelMap()

	tests := []struct {
		name string
		want Level
	}{
		{"Critical", CriticalLevel},
		{"critical", CriticalLevel},
		{"FATAL", FatalLevel},
		{"Warn", WarnLevel},
		{"Info", InfoLevel},
		{"Verbose", VerboseLevel},
		{"Finest", FinestLevel},
		{"All", AllLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if _, ok := m.Lookup("Warning"); ok {
		t.Error("Lookup(\"Warning\") should not be registered by default")
	}
	if _, ok := m.Lookup(""); ok {
		t.Error("Lookup(\"\") should fail")
	}
}

func TestLevelMap_RegisterRedefines(t *testing.T) {
	m := DefaultLevelMap()
	m.Register("critical", 50000)

	got, _ := m.Lookup("Critical")
	if got != 50000 {
		t.Errorf("Lookup(Critical) = %v, want 50000", got)
	}

	n := len(m.Names())
	m.Register("Audit", 45000)
	if len(m.Names()) != n+1 {
		t.Errorf("Names() length = %d, want %d", len(m.Names()), n+1)
	}
	if v, ok := m.LevelValue("audit"); !ok || v != 45000 {
		t.Errorf("LevelValue(audit) = %d, %v", v, ok)
	}
}

func TestLevelMap_Name(t *testing.T) {
	m := DefaultLevelMap()
	m.Register("Audit", 45000)

	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "Debug"},
		{VerboseLevel, "Verbose"},
		{Level(45000), "Audit"},
		{Level(45001), "45001"},
	}

	for _, tt := range tests {
		if got := m.Name(tt.level); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelMap_Suggest(t *testing.T) {
	m := DefaultLevelMap()

	got, ok := m.Suggest("Critcal")
	if !ok || got != "Critical" {
		t.Errorf("Suggest(Critcal) = %q, %v, want Critical", got, ok)
	}

	if _, ok := m.Suggest("zzzz"); ok {
		t.Error("Suggest(zzzz) should not match anything")
	}
}

func TestLevelMap_Parse(t *testing.T) {
	m := DefaultLevelMap()

	if l, ok := m.Parse("warn"); !ok || l != WarnLevel {
		t.Errorf("Parse(warn) = %v, %v", l, ok)
	}
	if l, ok := m.Parse("-100"); !ok || l != -100 {
		t.Errorf("Parse(-100) = %v, %v", l, ok)
	}
	if _, ok := m.Parse("nope"); ok {
		t.Error("Parse(nope) should fail")
	}
}

func TestLevelMap_Concurrent(t *testing.T) {
	m := DefaultLevelMap()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Register("Custom", Level(i*j))
				m.Lookup("custom")
				m.Name(InfoLevel)
			}
		}(i)
	}
	wg.Wait()
}
