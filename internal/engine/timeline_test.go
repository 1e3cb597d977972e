// internal/engine/timeline_test.go
package engine

import (
	"testing"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

func TestTimelineAppendAssignsIDAndTimestamp(t *testing.T) {
	tl := newTimeline()
	e := tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog, Content: "hi"})

	if e.ID == "" {
		t.Error("append should assign an id")
	}
	if e.Timestamp.IsZero() {
		t.Error("append should assign a timestamp")
	}
	if tl.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", tl.Len())
	}
}

func TestTimelinePatchLastMatching(t *testing.T) {
	tl := newTimeline()
	tl.Append(&types.TimelineEntry{Kind: types.EntryTool, ToolName: "lookup", ToolStatus: types.ToolRunning})
	tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog, Content: "between"})
	tl.Append(&types.TimelineEntry{Kind: types.EntryTool, ToolName: "lookup", ToolStatus: types.ToolRunning})

	patched := tl.PatchLastMatching(
		func(e *types.TimelineEntry) bool {
			return e.Kind == types.EntryTool && e.ToolName == "lookup" && e.ToolStatus == types.ToolRunning
		},
		func(e *types.TimelineEntry) { e.ToolStatus = types.ToolCompleted },
	)
	if !patched {
		t.Fatal("expected a match")
	}

	// Most recent match is patched; the earlier call stays running.
	snap := tl.Snapshot()
	if snap[2].ToolStatus != types.ToolCompleted {
		t.Error("last matching entry should be patched")
	}
	if snap[0].ToolStatus != types.ToolRunning {
		t.Error("earlier entry must not be patched")
	}
}

func TestTimelinePatchLastMatchingNoMatch(t *testing.T) {
	tl := newTimeline()
	tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog})

	patched := tl.PatchLastMatching(
		func(e *types.TimelineEntry) bool { return e.Kind == types.EntryTool },
		func(e *types.TimelineEntry) {},
	)
	if patched {
		t.Error("expected no match")
	}
}

func TestTimelineSnapshotIsACopy(t *testing.T) {
	tl := newTimeline()
	tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog, Content: "original"})

	snap := tl.Snapshot()
	snap[0].Content = "mutated"

	if tl.Last().Content != "original" {
		t.Error("snapshot mutation must not affect the store")
	}
}
