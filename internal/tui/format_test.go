// internal/tui/format_test.go
package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

func TestEntryLabel(t *testing.T) {
	cases := []struct {
		entry types.TimelineEntry
		want  string
	}{
		{types.TimelineEntry{Kind: types.EntryUserText}, "you"},
		{types.TimelineEntry{Kind: types.EntrySystemLog}, "system"},
		{types.TimelineEntry{Kind: types.EntryThought, AgentName: "critic"}, "critic"},
		{types.TimelineEntry{Kind: types.EntryAssistantText}, "assistant"},
	}
	for _, c := range cases {
		if got := entryLabel(c.entry); got != c.want {
			t.Errorf("entryLabel(%s) = %q, want %q", c.entry.Kind, got, c.want)
		}
	}
}

func TestRenderEntryTool(t *testing.T) {
	running := renderEntry(types.TimelineEntry{Kind: types.EntryTool, ToolName: "lookup", ToolStatus: types.ToolRunning})
	if !strings.Contains(running, "lookup") || !strings.Contains(running, "…") {
		t.Errorf("running tool should show name and pending marker: %q", running)
	}
	done := renderEntry(types.TimelineEntry{Kind: types.EntryTool, ToolName: "lookup", ToolStatus: types.ToolCompleted, ToolOutput: "42"})
	if !strings.Contains(done, "✓") || !strings.Contains(done, "42") {
		t.Errorf("completed tool should show check and output: %q", done)
	}
}

func TestRenderDraftPane(t *testing.T) {
	empty := renderDraftPane(engine.State{})
	if !strings.Contains(empty, "no draft") {
		t.Errorf("empty state should say so: %q", empty)
	}

	s := engine.State{
		Drafts: []types.DraftVersion{
			{Version: 1, Content: "first", Status: types.DraftStatusDraft},
			{Version: 2, Content: "second", Status: types.DraftStatusRevised},
		},
		CurrentDraft: 1,
	}
	pane := renderDraftPane(s)
	if !strings.Contains(pane, "first") {
		t.Errorf("pane should render the selected version, got %q", pane)
	}
	if strings.Contains(pane, "second") {
		t.Error("pane must not render unselected versions")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	got := truncate("multi\nline content here", 10)
	if strings.Contains(got, "\n") {
		t.Error("newlines should be flattened")
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("long text should be elided, got %q", got)
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	got := truncate("呼吸とリラクゼーションの練習", 5)
	if got != "呼吸とリラ…" {
		t.Errorf("got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
}
