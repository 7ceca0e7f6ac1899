package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/formatter"
	"github.com/philipp01105/nlogbridge/handler"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// When true, contended writes skip the handler lock. Detected
	// automatically for io.Discard and *os.File.
	ConcurrentWriter bool
}

// ConsoleHandler writes formatted entries synchronously. Each entry is
// formatted and written before Handle returns, so entries can always be
// recycled.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool

	mu      sync.Mutex // serializes writes and guards buf
	buf     bytes.Buffer
	bufPool sync.Pool // formatting buffers for contended callers
	lw      lockedWriter

	closed atomic.Bool
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	h := &ConsoleHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
	}
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.lw = lockedWriter{mu: &h.mu, w: h.writer}

	if h.bufferFormatter != nil {
		h.buf.Grow(256)
		h.bufPool.New = func() interface{} {
			b := new(bytes.Buffer)
			b.Grow(256)
			return b
		}
	}
	return h
}

// Handle formats and writes an entry.
//
// With a BufferFormatter, an uncontended caller formats into the
// handler-owned buffer under TryLock. Contended callers format into a
// pooled buffer outside the lock and only serialize the write.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.closed.Load() {
		return nil
	}

	if h.bufferFormatter != nil {
		if h.mu.TryLock() {
			h.buf.Reset()
			h.bufferFormatter.FormatEntry(entry, &h.buf)
			_, err := h.writer.Write(h.buf.Bytes())
			h.mu.Unlock()
			return err
		}

		b := h.bufPool.Get().(*bytes.Buffer)
		b.Reset()
		h.bufferFormatter.FormatEntry(entry, b)
		err := h.writeBytes(b.Bytes())
		if b.Cap() <= 64*1024 {
			h.bufPool.Put(b)
		}
		return err
	}

	if h.writerFormatter != nil {
		if h.concurrentSafe {
			return h.writerFormatter.FormatTo(entry, h.writer)
		}
		return h.writerFormatter.FormatTo(entry, &h.lw)
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	return h.writeBytes(data)
}

func (h *ConsoleHandler) writeBytes(p []byte) error {
	if h.concurrentSafe {
		_, err := h.writer.Write(p)
		return err
	}
	h.mu.Lock()
	_, err := h.writer.Write(p)
	h.mu.Unlock()
	return err
}

// CanRecycleEntry returns true because entries are written before Handle
// returns.
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Close stops the handler; later entries are discarded. The writer is not
// closed.
func (h *ConsoleHandler) Close() error {
	h.closed.Store(true)
	return nil
}

// lockedWriter serializes Write calls on the handler's mutex. Formatters
// build output in their own buffers and call Write once, so the lock is
// only held for the I/O.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return
}

// isConcurrentSafeWriter reports whether w is known to be safe for
// concurrent Write calls.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

var _ handler.Handler = (*ConsoleHandler)(nil)
var _ handler.Recycler = (*ConsoleHandler)(nil)
