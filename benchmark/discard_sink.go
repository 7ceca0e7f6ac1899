package benchmark

import (
	"context"

	"github.com/philipp01105/nlogbridge/sink"
)

// discardSink accepts every message and keeps nothing
type discardSink struct{}

func (discardSink) Write(_ context.Context, msg sink.Message) error {
	_ = len(msg.Text)
	return nil
}

func (discardSink) EndSession(context.Context, sink.Status, string) error { return nil }

func (discardSink) Close() error { return nil }
