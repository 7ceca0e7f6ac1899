package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipp01105/nlogbridge/core"
)

func TestParseLineNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{" 7 ", 7},
		{"0", 0},
		{"", 0},
		{"?", 0},
		{"-3", 0},
		{"12a", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLineNumber(tt.in), "ParseLineNumber(%q)", tt.in)
	}
}

func TestSourceFromCaller(t *testing.T) {
	assert.True(t, SourceFromCaller(core.CallerInfo{}).IsZero())

	src := SourceFromCaller(core.CallerInfo{
		File:     "/src/store/db.go",
		Line:     12,
		Function: "github.com/acme/app/store.(*DB).Get",
		Defined:  true,
	})
	assert.Equal(t, Source{
		MethodName: "Get",
		ClassName:  "github.com/acme/app/store.DB",
		FileName:   "/src/store/db.go",
		LineNumber: 12,
	}, src)

	src = SourceFromCaller(core.CallerInfo{File: "gen.go", Line: -3, Function: "main.run", Defined: true})
	assert.Equal(t, 0, src.LineNumber)
	assert.Equal(t, "gen.go", src.FileName)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Normal", Normal.String())
	assert.Equal(t, "Crashed", Crashed.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
