// Package severity maps the open-ended numeric levels of a logging
// framework onto the fixed five-tier taxonomy of the session sink:
// Critical, Error, Warning, Information and Verbose, plus Suppressed for
// events that must not be forwarded.
//
// Each tier is configured with a Setting parsed from a string: empty
// (follow the framework's canonical level of the same name), an integer,
// the token "const" (this package's hardcoded default), or a level name
// looked up in the framework's registry.
//
// Resolve turns a Config into Thresholds. It never fails; bad names fall
// back to canonical levels, inverted thresholds are clamped, and every
// substitution is reported as a Diagnostic. Classify then bands a level
// value by comparing it against the thresholds from Verbose upwards.
//
// Cache wraps both for concurrent use: writers swap the config under a
// mutex, readers classify against an atomically published snapshot.
//
//	c := severity.NewCache(core.DefaultLevelMap(), severity.Discard)
//	c.Set(severity.Error, "Severe")
//	tier := c.Classify(int(core.ErrorLevel)) // Warning
package severity
