package bridge

import (
	"bytes"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

// message converts an entry into a sink message. The result shares no
// memory with entry, so pooled entries may be recycled afterwards.
func (h *Handler) message(entry *core.Entry, tier severity.Tier) sink.Message {
	msg := sink.Message{
		Time:       entry.Time,
		Severity:   tier,
		Category:   h.category,
		LoggerName: entry.LoggerName,
		User:       entry.Identity,
		Source:     sink.SourceFromCaller(entry.Caller),
		Text:       h.render(entry),
		Err:        entry.Err,
	}
	if len(entry.Fields) > 0 {
		msg.Fields = make([]core.Field, len(entry.Fields))
		copy(msg.Fields, entry.Fields)
	}
	return msg
}

// render returns the layout output without its line terminator, or the
// raw message when there is no layout or it fails.
func (h *Handler) render(entry *core.Entry) string {
	if h.layout == nil {
		return entry.Message
	}
	b, err := h.layout.Format(entry)
	if err != nil {
		return entry.Message
	}
	return string(bytes.TrimRight(b, "\r\n"))
}
