package handler

import (
	"sync/atomic"
	"time"

	"github.com/philipp01105/nlogbridge/severity"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// ParseOverflowPolicy is the inverse of String. Unknown names map to
// DropNewest and ok=false.
func ParseOverflowPolicy(s string) (OverflowPolicy, bool) {
	switch s {
	case "DropNewest", "drop_newest", "dropnewest":
		return DropNewest, true
	case "DropOldest", "drop_oldest", "dropoldest":
		return DropOldest, true
	case "Block", "block":
		return Block, true
	default:
		return DropNewest, false
	}
}

// DefaultTierPolicy returns the default overflow policy per sink tier:
// low tiers are dropped when the queue is full, Error and Critical block
// with a timeout.
func DefaultTierPolicy() map[severity.Tier]OverflowPolicy {
	return map[severity.Tier]OverflowPolicy{
		severity.Verbose:     DropNewest,
		severity.Information: DropNewest,
		severity.Warning:     DropNewest,
		severity.Error:       Block,
		severity.Critical:    Block,
	}
}

// NewStoppedTimer returns a timer that is stopped and drained, ready for
// Reset. Async handlers keep one to bound Block waits without allocating
// a timer per entry.
func NewStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// StopTimer stops t and drains its channel if it already fired.
func StopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

const numTiers = int(severity.Critical) + 1

// Stats tracks handler statistics per sink tier. All methods are safe for
// concurrent use.
type Stats struct {
	forwarded [numTiers]atomic.Uint64
	dropped   [numTiers]atomic.Uint64
	// suppressed counts events classified below the Verbose threshold
	suppressed atomic.Uint64
	// blocked counts times logging blocked due to full queue
	blocked atomic.Uint64
	// failed counts sink writes that returned an error
	failed atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func tierIndex(t severity.Tier) int {
	i := int(t)
	if i < 0 || i >= numTiers {
		return 0
	}
	return i
}

// IncrementForwarded counts an event delivered to the sink
func (s *Stats) IncrementForwarded(t severity.Tier) {
	s.forwarded[tierIndex(t)].Add(1)
}

// IncrementDropped counts an event lost to a full queue
func (s *Stats) IncrementDropped(t severity.Tier) {
	s.dropped[tierIndex(t)].Add(1)
}

// IncrementSuppressed counts an event that was not forwarded because it
// fell below the Verbose threshold
func (s *Stats) IncrementSuppressed() {
	s.suppressed.Add(1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementFailed counts a failed sink write
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// GetForwarded returns the forwarded count for a tier
func (s *Stats) GetForwarded(t severity.Tier) uint64 {
	return s.forwarded[tierIndex(t)].Load()
}

// GetDropped returns the dropped count for a tier
func (s *Stats) GetDropped(t severity.Tier) uint64 {
	return s.dropped[tierIndex(t)].Load()
}

// GetSuppressed returns the suppressed count
func (s *Stats) GetSuppressed() uint64 {
	return s.suppressed.Load()
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return s.blocked.Load()
}

// GetFailed returns the failed write count
func (s *Stats) GetFailed() uint64 {
	return s.failed.Load()
}

// GetTotalForwarded returns the total forwarded across all tiers
func (s *Stats) GetTotalForwarded() uint64 {
	var n uint64
	for _, t := range severity.Tiers {
		n += s.GetForwarded(t)
	}
	return n
}

// GetTotalDropped returns the total dropped across all tiers
func (s *Stats) GetTotalDropped() uint64 {
	var n uint64
	for _, t := range severity.Tiers {
		n += s.GetDropped(t)
	}
	return n
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.forwarded {
		s.forwarded[i].Store(0)
		s.dropped[i].Store(0)
	}
	s.suppressed.Store(0)
	s.blocked.Store(0)
	s.failed.Store(0)
}

// Snapshot is a point-in-time copy of Stats. Tier keys marshal by name.
type Snapshot struct {
	Forwarded  map[severity.Tier]uint64 `json:"forwarded"`
	Dropped    map[severity.Tier]uint64 `json:"dropped"`
	Suppressed uint64                   `json:"suppressed"`
	Blocked    uint64                   `json:"blocked"`
	Failed     uint64                   `json:"failed"`
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Forwarded:  make(map[severity.Tier]uint64, len(severity.Tiers)),
		Dropped:    make(map[severity.Tier]uint64, len(severity.Tiers)),
		Suppressed: s.GetSuppressed(),
		Blocked:    s.GetBlocked(),
		Failed:     s.GetFailed(),
	}
	for _, t := range severity.Tiers {
		snap.Forwarded[t] = s.GetForwarded(t)
		snap.Dropped[t] = s.GetDropped(t)
	}
	return snap
}
