// internal/tui/format.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	agentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	thoughtStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	logStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	artifactStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cursorMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("▌")
)

// entryLabel names the speaker of a timeline entry.
func entryLabel(e types.TimelineEntry) string {
	switch e.Kind {
	case types.EntryUserText:
		return "you"
	case types.EntrySystemLog:
		return "system"
	default:
		if e.AgentName != "" {
			return e.AgentName
		}
		return "assistant"
	}
}

// renderEntry formats one timeline entry as display lines.
func renderEntry(e types.TimelineEntry) string {
	label := entryLabel(e)
	switch e.Kind {
	case types.EntryUserText:
		return userStyle.Render(label+" ▸ ") + e.Content
	case types.EntryAssistantText:
		line := assistantStyle.Render(label+" ▸ ") + e.Content
		if e.IsStreaming {
			line += cursorMark
		}
		return line
	case types.EntryThought:
		line := thoughtStyle.Render(label + " ∴ " + e.Content)
		if e.IsStreaming {
			line += cursorMark
		}
		return line
	case types.EntryAgentStart:
		return agentStyle.Render("● " + label + " — " + e.Content)
	case types.EntryTool:
		status := "…"
		if e.ToolStatus == types.ToolCompleted {
			status = "✓"
		}
		line := toolStyle.Render(fmt.Sprintf("⚙ %s %s", e.ToolName, status))
		if e.ToolOutput != "" {
			line += " " + truncate(e.ToolOutput, 120)
		}
		return line
	case types.EntryArtifact:
		title := e.ArtifactTitle
		if title == "" {
			title = e.ArtifactType
		}
		if e.Version > 0 {
			title = fmt.Sprintf("%s (v%d)", title, e.Version)
		}
		return artifactStyle.Render("◆ " + title)
	case types.EntryCritique:
		return artifactStyle.Render(fmt.Sprintf("◇ critique, iteration %d", e.Iteration))
	default:
		return logStyle.Render("· " + e.Content)
	}
}

// renderTimeline joins entries into the viewport body.
func renderTimeline(entries []types.TimelineEntry) string {
	if len(entries) == 0 {
		return logStyle.Render("· no activity yet")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

// renderDraftPane shows the currently selected draft version.
func renderDraftPane(s engine.State) string {
	if len(s.Drafts) == 0 {
		return logStyle.Render("· no draft yet")
	}
	var cur types.DraftVersion
	for _, v := range s.Drafts {
		if v.Version == s.CurrentDraft {
			cur = v
		}
	}
	header := headerStyle.Render(fmt.Sprintf("Draft v%d/%d [%s]", cur.Version, len(s.Drafts), cur.Status))
	return header + "\n\n" + cur.Content
}

// renderCritiquePane shows the currently selected critique iteration.
func renderCritiquePane(s engine.State) string {
	if len(s.Critiques) == 0 {
		return logStyle.Render("· no critique yet")
	}
	var cur types.CritiqueDocument
	for _, d := range s.Critiques {
		if d.Iteration == s.CurrentCritique {
			cur = d
		}
	}
	header := headerStyle.Render(fmt.Sprintf("Critique, iteration %d of %d", cur.Iteration, len(s.Critiques)))
	return header + "\n\n" + cur.Content
}

// renderApprovalBar renders the HITL prompt while a plan is pending.
func renderApprovalBar(req types.ApprovalRequest) string {
	preview := truncate(req.Preview, 80)
	return pendingStyle.Render("PLAN PENDING: "+preview) + logStyle.Render("  ctrl+a approve · ctrl+r reject · type to request changes")
}

// truncate shortens to n runes, never splitting a multi-byte character.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
