// Package config loads bridge settings from a YAML file, .env files and
// NLOG_* environment variables.
//
//	severity:
//	  critical: Fatal
//	  error: const
//	  verbose: -100
//	endSessionOnClose: true
//	sink: sqlite
//	sqlitePath: /var/log/app/nlog.db
//	async: true
//	overflowPolicy:
//	  warning: DropOldest
//
// Numeric thresholds may be written as YAML numbers; they are kept as
// the raw strings the bridge resolves.
package config
