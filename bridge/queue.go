package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/philipp01105/nlogbridge/handler"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// ErrDrainTimeout is returned by Close when queued messages could not be
// forwarded within the drain timeout
var ErrDrainTimeout = errors.New("bridge: drain timed out")

// queue forwards messages to the sink from a background goroutine
type queue struct {
	h              *Handler
	ch             chan sink.Message
	overflowPolicy map[severity.Tier]handler.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	timers         sync.Pool // stopped *time.Timer for Block waits

	closing  chan struct{}
	wg       sync.WaitGroup
	drainErr error
}

func newQueue(h *Handler, cfg Config) *queue {
	q := &queue{
		h:              h,
		ch:             make(chan sink.Message, cfg.BufferSize),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		closing:        make(chan struct{}),
	}
	q.timers.New = func() interface{} {
		return handler.NewStoppedTimer()
	}

	q.wg.Add(1)
	go q.process()
	return q
}

// enqueue applies the overflow policy of the message tier. The caller
// holds the handler's read lock, so close cannot start meanwhile.
func (q *queue) enqueue(msg sink.Message) error {
	policy, ok := q.overflowPolicy[msg.Severity]
	if !ok {
		policy = handler.DropNewest
	}

	switch policy {
	case handler.Block:
		select {
		case q.ch <- msg:
			return nil
		default:
		}

		timer := q.timers.Get().(*time.Timer)
		timer.Reset(q.blockTimeout)
		defer func() {
			handler.StopTimer(timer)
			q.timers.Put(timer)
		}()

		select {
		case q.ch <- msg:
			return nil
		case <-timer.C:
			// Still full: write on the caller's goroutine
			q.h.stats.IncrementBlocked()
			return q.h.write(context.Background(), msg)
		}

	case handler.DropOldest:
		select {
		case q.ch <- msg:
			return nil
		default:
		}
		select {
		case old := <-q.ch:
			q.h.stats.IncrementDropped(old.Severity)
		default:
		}
		select {
		case q.ch <- msg:
		default:
			q.h.stats.IncrementDropped(msg.Severity)
		}
		return nil

	default:
		select {
		case q.ch <- msg:
		default:
			q.h.stats.IncrementDropped(msg.Severity)
		}
		return nil
	}
}

func (q *queue) process() {
	defer q.wg.Done()
	ctx := context.Background()

	for {
		select {
		case msg := <-q.ch:
			_ = q.h.write(ctx, msg)
			// Batch drain without blocking, yielding to Close
		batch:
			for {
				select {
				case <-q.closing:
					break batch
				default:
				}
				select {
				case msg := <-q.ch:
					_ = q.h.write(ctx, msg)
				default:
					break batch
				}
			}
		case <-q.closing:
			q.drainErr = q.drain(ctx)
			return
		}
	}
}

// drain forwards what is left in the queue until it is empty or the
// drain timeout passes. Messages left behind are counted as dropped.
func (q *queue) drain(ctx context.Context) error {
	deadline := time.NewTimer(q.drainTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-deadline.C:
			left := 0
			for {
				select {
				case msg := <-q.ch:
					q.h.stats.IncrementDropped(msg.Severity)
					left++
				default:
					return fmt.Errorf("%w: %d messages dropped", ErrDrainTimeout, left)
				}
			}
		default:
		}

		select {
		case msg := <-q.ch:
			_ = q.h.write(ctx, msg)
		default:
			return nil
		}
	}
}

func (q *queue) close() error {
	close(q.closing)
	q.wg.Wait()
	return q.drainErr
}
