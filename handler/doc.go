// Package handler provides the Handler interface and the pieces shared by
// its implementations.
//
// A Handler receives pooled *core.Entry values. Handlers that finish with
// an entry before Handle returns implement Recycler so the caller can put
// the entry back into the pool; handlers that queue entries must Clone
// them or report CanRecycleEntry() == false.
//
// Async handlers apply an OverflowPolicy per sink tier when their queue
// is full: DropNewest (default for Verbose, Information and Warning),
// DropOldest, or Block with a configurable timeout (default for Error
// and Critical). Low-priority events never stall the application and
// errors are not silently dropped.
//
// Built-in handlers:
//
//   - MultiHandler fans out a single entry to multiple child handlers.
//   - SlogHandler adapts a Handler to log/slog.Handler, so the standard
//     library logger can feed the framework.
//   - consolehandler writes formatted entries to any io.Writer.
//   - bridge.Handler classifies entries and forwards them to a session
//     sink.
//
// Stats tracks forwarded, dropped, suppressed, blocked and failed counts
// per tier and can be queried at runtime.
package handler
