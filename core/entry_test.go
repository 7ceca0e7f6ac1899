package core

import (
	"errors"
	"testing"
)

func TestEntryPool(t *testing.T) {
	e1 := GetEntry()
	if e1 == nil {
		t.Fatal("GetEntry() returned nil")
	}
	if len(e1.Fields) != 0 {
		t.Errorf("Expected empty fields, got %d", len(e1.Fields))
	}

	e1.Message = "test"
	e1.LoggerName = "app.db"
	e1.Identity = "alice"
	e1.Err = errors.New("boom")
	e1.Fields = append(e1.Fields, Field{Key: "test", Str: "value"})
	PutEntry(e1)

	e2 := GetEntry()
	if e2.Message != "" {
		t.Errorf("Expected empty message after pool reset, got %q", e2.Message)
	}
	if e2.LoggerName != "" || e2.Identity != "" {
		t.Errorf("Expected empty logger name and identity, got %q / %q", e2.LoggerName, e2.Identity)
	}
	if e2.Err != nil {
		t.Errorf("Expected nil error after pool reset, got %v", e2.Err)
	}
	if len(e2.Fields) != 0 {
		t.Errorf("Expected empty fields after pool reset, got %d", len(e2.Fields))
	}
	if e2.Time.IsZero() {
		t.Error("GetEntry() should stamp the current time")
	}
}

func TestEntryClone(t *testing.T) {
	e := &Entry{Message: "m", Fields: []Field{{Key: "a", Str: "1"}}}
	c := e.Clone()
	c.Fields[0].Str = "2"

	if e.Fields[0].Str != "1" {
		t.Error("Clone() shares the Fields backing array")
	}
	if c.Message != "m" {
		t.Errorf("Clone().Message = %q, want %q", c.Message, "m")
	}
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(1)
	if !caller.Defined {
		t.Fatal("GetCaller() returned undefined CallerInfo")
	}
	if caller.ShortFile != "entry_test.go" {
		t.Errorf("ShortFile = %q, want entry_test.go", caller.ShortFile)
	}
	if caller.Line == 0 {
		t.Error("Expected non-zero line number")
	}

	method, class := caller.Split()
	if method != "TestGetCaller" {
		t.Errorf("method = %q, want TestGetCaller", method)
	}
	if class == "" {
		t.Error("Expected package path as class")
	}
}

func TestCallerFromPC_Zero(t *testing.T) {
	if c := CallerFromPC(0); c.Defined {
		t.Errorf("CallerFromPC(0) = %+v, want undefined", c)
	}
}

func TestCallerInfo_Split(t *testing.T) {
	tests := []struct {
		function   string
		wantMethod string
		wantClass  string
	}{
		{"github.com/acme/app/store.(*DB).Get", "Get", "github.com/acme/app/store.DB"},
		{"github.com/acme/app/store.Cache.Len", "Len", "github.com/acme/app/store.Cache"},
		{"github.com/acme/app/store.Open", "Open", "github.com/acme/app/store"},
		{"gopkg.in/yaml.v3.Unmarshal", "Unmarshal", "gopkg.in/yaml.v3"},
		{"main.main", "main", "main"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			method, class := CallerInfo{Function: tt.function}.Split()
			if method != tt.wantMethod || class != tt.wantClass {
				t.Errorf("Split() = (%q, %q), want (%q, %q)", method, class, tt.wantMethod, tt.wantClass)
			}
		})
	}
}

func BenchmarkGetEntry(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := GetEntry()
		PutEntry(e)
	}
}
