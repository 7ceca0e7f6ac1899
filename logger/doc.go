// Package logger is the public API of the framework. Most users only need
// to import this package.
//
// A Logger is immutable after construction. Fields, level, name and
// handler are set once via the Builder and never modified, so a Logger is
// safe for concurrent use without locking on the read path.
//
// The package initializes a default Logger (synchronous, InfoLevel, text
// format to stdout) in init(). The package-level functions delegate to it:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// Levels are numeric and open-ended. Besides the helpers for well-known
// levels (Verbose through Critical), Log accepts any core.Level, including
// custom ones registered on a core.LevelMap:
//
//	audit, _ := log.ParseLevel("Audit")
//	log.Log(audit, "record changed")
//
// Child loggers come from With (extra fields) and Named (dotted names):
//
//	reqLog := log.Named("http").With(logger.String("request_id", id))
//
// Level checks happen before any allocation, so filtered-out messages
// cost a single integer comparison.
package logger
