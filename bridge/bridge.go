package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/formatter"
	"github.com/philipp01105/nlogbridge/handler"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// ErrNoSink is returned by New when Config.Sink is nil
var ErrNoSink = errors.New("bridge: no sink configured")

// EndSessionReason is the reason recorded when Close ends the session
const EndSessionReason = "nlogbridge handler has been closed."

// Config holds configuration for the bridge handler
type Config struct {
	// Sink receives forwarded messages (required)
	Sink sink.Sink
	// Levels resolves named thresholds (default: core.DefaultLevelMap)
	Levels *core.LevelMap
	// Severity holds the raw threshold settings
	Severity Settings
	// Category tags every message (default: sink.DefaultCategory)
	Category string
	// Layout renders the message text. Nil forwards the raw message.
	Layout formatter.Formatter
	// EndSessionOnClose ends the sink session when the handler closes
	EndSessionOnClose bool
	// Diagnostics receives threshold resolution reports (default: discard)
	Diagnostics severity.Diagnostics

	// Async forwards through a background queue
	Async bool
	// BufferSize is the queue capacity (default: 1000)
	BufferSize int
	// OverflowPolicy per tier when the queue is full
	// (default: handler.DefaultTierPolicy)
	OverflowPolicy map[severity.Tier]handler.OverflowPolicy
	// BlockTimeout bounds Block waits before a synchronous write
	// (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds the queue drain on Close (default: 5s)
	DrainTimeout time.Duration
}

func applyBridgeDefaults(cfg *Config) {
	if cfg.Levels == nil {
		cfg.Levels = core.DefaultLevelMap()
	}
	if cfg.Category == "" {
		cfg.Category = sink.DefaultCategory
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = severity.Discard
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = handler.DefaultTierPolicy()
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// Handler classifies framework entries into sink tiers and forwards
// everything above the Verbose threshold to a sink.Sink.
type Handler struct {
	sink     sink.Sink
	cache    *severity.Cache
	levels   *core.LevelMap
	category string
	layout   formatter.Formatter
	stats    *handler.Stats
	queue    *queue

	endSession atomic.Bool

	// mu is held for reading while an entry is forwarded, so Close
	// never overtakes an accepted message.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// New creates a bridge handler. The thresholds are resolved on first use
// and again after every settings change.
func New(cfg Config) (*Handler, error) {
	if cfg.Sink == nil {
		return nil, ErrNoSink
	}
	applyBridgeDefaults(&cfg)

	h := &Handler{
		sink:     cfg.Sink,
		cache:    severity.NewCache(cfg.Levels, cfg.Diagnostics),
		levels:   cfg.Levels,
		category: cfg.Category,
		layout:   cfg.Layout,
		stats:    handler.NewStats(),
	}
	h.cache.SetConfig(cfg.Severity.Config())
	h.endSession.Store(cfg.EndSessionOnClose)

	if cfg.Async {
		h.queue = newQueue(h, cfg)
	}
	return h, nil
}

// Handle classifies entry and forwards it unless it is Suppressed
func (h *Handler) Handle(entry *core.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return sink.ErrClosed
	}

	tier := h.cache.Classify(int(entry.Level))
	if tier == severity.Suppressed {
		h.stats.IncrementSuppressed()
		return nil
	}

	msg := h.message(entry, tier)
	if h.queue != nil {
		return h.queue.enqueue(msg)
	}
	return h.write(context.Background(), msg)
}

func (h *Handler) write(ctx context.Context, msg sink.Message) error {
	if err := h.sink.Write(ctx, msg); err != nil {
		h.stats.IncrementFailed()
		return fmt.Errorf("bridge: write %s message: %w", msg.Severity, err)
	}
	h.stats.IncrementForwarded(msg.Severity)
	return nil
}

// CanRecycleEntry returns true: Handle copies everything it keeps into
// the sink message, including in async mode.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Classify returns the tier of a level under the current settings
func (h *Handler) Classify(level core.Level) severity.Tier {
	return h.cache.Classify(int(level))
}

// Thresholds returns the resolved thresholds for the current settings
func (h *Handler) Thresholds() severity.Thresholds {
	return h.cache.Thresholds()
}

// Levels returns the level registry thresholds are resolved against
func (h *Handler) Levels() *core.LevelMap {
	return h.levels
}

// Stats returns the handler statistics
func (h *Handler) Stats() *handler.Stats {
	return h.stats
}

// Close drains the queue, ends the sink session when configured and
// closes the sink. Only the first call has an effect.
func (h *Handler) Close() error {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		h.mu.Unlock()
		h.closeErr = h.close()
	})
	return h.closeErr
}

func (h *Handler) close() error {
	var err error
	if h.queue != nil {
		err = multierr.Append(err, h.queue.close())
	}
	if h.endSession.Load() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = multierr.Append(err, h.sink.EndSession(ctx, sink.Normal, EndSessionReason))
		cancel()
	}
	return multierr.Append(err, h.sink.Close())
}
