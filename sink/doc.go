// Package sink defines the centralized log the bridge forwards events to.
//
// A Sink receives Messages already classified into a severity.Tier, plus
// an end-of-session notification. The subpackages provide an in-memory
// recorder (memsink), a zap adapter (zapsink), a session store on SQLite
// (sqlitesink) and an OpenTelemetry log emitter (otelsink).
package sink
