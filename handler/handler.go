package handler

import (
	"github.com/philipp01105/nlogbridge/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Recycler is implemented by handlers that know whether they are done
// with an entry when Handle returns.
type Recycler interface {
	// CanRecycleEntry reports whether the caller may return the entry to
	// the pool after Handle.
	CanRecycleEntry() bool
}

// CanRecycle reports whether entries passed to h may be pooled again
// after Handle returns. Handlers that don't say are assumed to keep them.
func CanRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}
