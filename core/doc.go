// Package core defines the shared types of the logging framework.
//
// Level is a numeric severity on an open-ended scale. The well-known
// levels (Verbose=10000 through Emergency=120000) are predefined, and a
// LevelMap lets applications register additional names or redefine
// existing ones. Anything that needs to interpret a level by name (the
// formatters, the session bridge) goes through a LevelMap rather than
// the constants, so custom levels are honoured end to end.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once the handler is done with it.
// Handlers that hold on to an entry past Handle must Clone it or report
// CanRecycleEntry() == false.
package core
