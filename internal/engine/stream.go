// internal/engine/stream.go
package engine

import "github.com/naveenvasou/cerina-v0/internal/types"

// streamCoalescer merges consecutive chunk events into one growing
// timeline entry. At most one entry streams at a time; any non-chunk
// event finalizes the active stream before it is processed.
type streamCoalescer struct {
	tl *timeline
}

func newStreamCoalescer(tl *timeline) *streamCoalescer {
	return &streamCoalescer{tl: tl}
}

// ApplyChunk grows the active streaming entry of the given kind, or
// finalizes whatever was streaming and opens a new entry.
func (c *streamCoalescer) ApplyChunk(kind types.EntryKind, agent, content string) {
	last := c.tl.Last()
	if last != nil && last.IsStreaming && last.Kind == kind {
		last.Content += content
		return
	}
	c.Finalize()
	c.tl.Append(&types.TimelineEntry{
		Kind:        kind,
		AgentName:   agent,
		Content:     content,
		IsStreaming: true,
	})
}

// Finalize marks the streaming entry complete. Idempotent: a no-op when
// nothing is streaming.
func (c *streamCoalescer) Finalize() {
	c.tl.PatchLastMatching(
		func(e *types.TimelineEntry) bool { return e.IsStreaming },
		func(e *types.TimelineEntry) { e.IsStreaming = false },
	)
}
