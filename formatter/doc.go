// Package formatter defines how log entries are serialized into bytes.
//
// Formatter returns a []byte, WriterFormatter writes to an io.Writer and
// BufferFormatter appends to a caller-owned bytes.Buffer. Handlers check
// for the narrower interfaces once at construction time and prefer them.
// Both built-in formatters (TextFormatter and JSONFormatter) implement all
// three.
//
// Level names are looked up in Config.Levels, so custom levels registered
// on a core.LevelMap show up by name. Values without a registered name
// are printed as numbers.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
