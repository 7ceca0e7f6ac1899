// Package memsink provides an in-memory sink.Sink that records every
// message, mostly for tests and the CLI.
package memsink

import (
	"context"
	"sync"

	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// Session is the recorded end of a session
type Session struct {
	Ended  bool
	Status sink.Status
	Reason string
}

// Sink stores messages in memory. The zero value is ready to use.
type Sink struct {
	mu       sync.Mutex
	messages []sink.Message
	session  Session
	closed   bool
	// WriteErr, when set, is returned by every Write
	WriteErr error
}

// New returns an empty Sink
func New() *Sink {
	return &Sink{}
}

// Write records msg
func (s *Sink) Write(_ context.Context, msg sink.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return sink.ErrClosed
	}
	if s.WriteErr != nil {
		return s.WriteErr
	}
	msg.Fields = append(msg.Fields[:0:0], msg.Fields...)
	s.messages = append(s.messages, msg)
	return nil
}

// EndSession records the session end
func (s *Sink) EndSession(_ context.Context, status sink.Status, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return sink.ErrClosed
	}
	s.session = Session{Ended: true, Status: status, Reason: reason}
	return nil
}

// Close marks the sink closed. Recorded messages stay readable.
func (s *Sink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Closed reports whether Close was called
func (s *Sink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Messages returns a copy of the recorded messages
func (s *Sink) Messages() []sink.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sink.Message(nil), s.messages...)
}

// Len returns the number of recorded messages
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Count returns the number of recorded messages of tier t
func (s *Sink) Count(t severity.Tier) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, m := range s.messages {
		if m.Severity == t {
			n++
		}
	}
	return n
}

// Session returns the recorded session end
func (s *Sink) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Reset forgets all recorded messages and the session end
func (s *Sink) Reset() {
	s.mu.Lock()
	s.messages = nil
	s.session = Session{}
	s.mu.Unlock()
}
