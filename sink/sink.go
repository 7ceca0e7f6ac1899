package sink

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/severity"
)

// DefaultCategory tags messages forwarded by the bridge
const DefaultCategory = "NLog"

// ErrClosed is returned by sinks used after Close
var ErrClosed = errors.New("sink: closed")

// Status is the final state recorded for a logging session
type Status uint8

const (
	// Normal marks a session that ended cleanly
	Normal Status = iota
	// Crashed marks a session that ended abnormally
	Crashed
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Crashed:
		return "Crashed"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Source is the code location a message was logged from. LineNumber 0
// means unknown.
type Source struct {
	MethodName string
	ClassName  string
	FileName   string
	LineNumber int
}

// IsZero reports whether no location information is present
func (s Source) IsZero() bool {
	return s == Source{}
}

// SourceFromCaller converts framework caller information into a Source
func SourceFromCaller(c core.CallerInfo) Source {
	if !c.Defined {
		return Source{}
	}
	method, class := c.Split()
	return Source{
		MethodName: method,
		ClassName:  class,
		FileName:   c.File,
		LineNumber: lineNumber(c.Line),
	}
}

// ParseLineNumber parses a textual line number. Anything that is not a
// non-negative integer yields 0.
func ParseLineNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return lineNumber(n)
}

func lineNumber(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Message is one event forwarded to a Sink
type Message struct {
	Time       time.Time
	Severity   severity.Tier
	Category   string
	LoggerName string
	// User is the identity the event was logged on behalf of. Empty means
	// the sink should attribute it to the process user.
	User   string
	Source Source
	Text   string
	Err    error
	Fields []core.Field
}

// Sink is the centralized log the bridge forwards to. Implementations
// must be safe for concurrent use.
type Sink interface {
	// Write records one message
	Write(ctx context.Context, msg Message) error
	// EndSession marks the logging session as finished
	EndSession(ctx context.Context, status Status, reason string) error
	// Close releases the sink's resources
	Close() error
}
