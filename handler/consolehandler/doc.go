// Package consolehandler writes formatted log entries to any io.Writer
// (default: os.Stdout).
//
// ConsoleHandler is synchronous. An uncontended caller formats into a
// handler-owned buffer under TryLock; contended callers format into
// pooled buffers outside the lock and serialize only the write. Writers
// known to be goroutine-safe (*os.File, io.Discard) skip the lock.
package consolehandler
