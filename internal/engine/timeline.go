// internal/engine/timeline.go
package engine

import (
	"time"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

// timeline is the ordered append/patch log of UI-visible entries. Display
// order is receipt order; entries are never removed or re-sorted. The two
// sanctioned in-place mutations are streaming finalization and the
// running-to-completed tool transition.
type timeline struct {
	entries []*types.TimelineEntry
}

func newTimeline() *timeline {
	return &timeline{}
}

// Append adds an entry at the end, assigning a stable local id and a
// timestamp when the caller left them empty.
func (t *timeline) Append(e *types.TimelineEntry) *types.TimelineEntry {
	if e.ID == "" {
		e.ID = types.NewEntryID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	t.entries = append(t.entries, e)
	return e
}

// Last returns the most recent entry, or nil when the timeline is empty.
func (t *timeline) Last() *types.TimelineEntry {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

// PatchLastMatching scans from the end for the most recent entry
// satisfying pred and applies patch to it. Reports whether a match was
// found; callers fall back to Append when it was not.
func (t *timeline) PatchLastMatching(pred func(*types.TimelineEntry) bool, patch func(*types.TimelineEntry)) bool {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if pred(t.entries[i]) {
			patch(t.entries[i])
			return true
		}
	}
	return false
}

func (t *timeline) Len() int {
	return len(t.entries)
}

// Snapshot returns value copies of every entry in display order.
func (t *timeline) Snapshot() []types.TimelineEntry {
	out := make([]types.TimelineEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = *e
	}
	return out
}
