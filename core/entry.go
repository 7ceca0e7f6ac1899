package core

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Entry represents a log event with all its metadata
type Entry struct {
	Time       time.Time
	Level      Level
	Message    string
	LoggerName string
	// Identity is the user the event was logged on behalf of, if any.
	Identity string
	// Err is the exception payload attached to the event.
	Err    error
	Fields []Field
	Caller CallerInfo
}

// CallerInfo contains information about the call site
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// Split breaks the fully qualified function name into a method name and
// the type (or package) it belongs to.
//
//	github.com/acme/app/store.(*DB).Get -> "Get", "github.com/acme/app/store.DB"
//	github.com/acme/app/store.Open     -> "Open", "github.com/acme/app/store"
func (c CallerInfo) Split() (method, class string) {
	fn := c.Function
	if fn == "" {
		return "", ""
	}

	// Package paths may contain dots, so look for the first dot after
	// the last slash.
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.IndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return fn, ""
	}
	pkg, rest := fn[:slash+1+dot], fn[slash+1+dot+1:]

	i := strings.LastIndexByte(rest, '.')
	if i < 0 {
		return rest, pkg
	}

	recv := strings.TrimSuffix(strings.TrimPrefix(rest[:i], "(*"), ")")
	return rest[i+1:], pkg + "." + recv
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8),
		}
	},
}

// GetEntry retrieves a clean Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	return e
}

// PutEntry resets an Entry and returns it to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.LoggerName = ""
	e.Identity = ""
	e.Err = nil
	e.Caller = CallerInfo{}
	entryPool.Put(e)
}

// Clone returns a copy of the entry that does not share the Fields
// backing array, for handlers that keep entries past Handle.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Fields = append([]Field(nil), e.Fields...)
	return &c
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}
	return callerFromPC(pc, file, line)
}

// CallerFromPC builds caller information from a program counter, as
// found in log/slog records.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

func callerFromPC(pc uintptr, file string, line int) CallerInfo {
	var funcName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
