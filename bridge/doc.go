// Package bridge provides the appender that connects the logging
// framework to a centralized sink.
//
// A bridge Handler is a handler.Handler. For every entry it classifies the
// entry's numeric level into a severity.Tier using thresholds resolved from
// five raw settings, drops entries below the Verbose threshold, and
// forwards the rest as sink.Messages:
//
//	h, err := bridge.New(bridge.Config{
//		Sink: memsink.New(),
//		Severity: bridge.Settings{
//			Critical: "Fatal",
//			Error:    "const",
//			Verbose:  "-100",
//		},
//	})
//	log := logger.NewBuilder().WithHandler(h).Build()
//
// Settings may be changed at any time through Set, using the canonical
// names (SeverityCritical, SeverityError, SeverityWarn, SeverityInfo,
// SeverityVerbose, EndSessionOnClose) or their aliases. The thresholds are
// re-resolved once, on the next classification after a change.
//
// With Async set, messages go through a bounded queue drained by one
// goroutine. When the queue is full the per-tier OverflowPolicy decides
// whether a message is dropped or the caller blocks for BlockTimeout and
// then writes synchronously.
package bridge
