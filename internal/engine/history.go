// internal/engine/history.go
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

// placeholderPreview stands in when a pending approval is restored from
// the status poll and the payload carries no displayable preview.
const placeholderPreview = "A plan is awaiting your approval."

// Bootstrap replays the session's stored history through the same
// ingestion rules the live path uses, then restores any pending approval
// from the status poll. It runs once per engine; later calls are no-ops.
// Fetch failures are logged and reconciliation proceeds with whatever was
// obtained, rather than blocking the client. On completion the engine
// goes live and replays events buffered during the fetches.
func (e *Engine) Bootstrap(ctx context.Context, src types.HistorySource) error {
	e.mu.Lock()
	if e.bootstrapped {
		e.mu.Unlock()
		return nil
	}
	e.bootstrapped = true
	sessionID := e.sessionID
	e.mu.Unlock()

	var items []types.HistoryItem
	var status *types.ApprovalStatus
	if src != nil {
		var err error
		items, err = src.ChatHistory(ctx, sessionID)
		if err != nil {
			slog.Error("history fetch failed, continuing with empty history", "session_id", string(sessionID), "error", err)
			items = nil
		}
		status, err = src.ApprovalStatus(ctx, sessionID)
		if err != nil {
			slog.Error("approval status fetch failed, assuming none pending", "session_id", string(sessionID), "error", err)
			status = nil
		}
	}

	// Stored order is sequence order; sort defensively in case a proxy
	// reordered the response.
	sort.SliceStable(items, func(i, j int) bool { return items[i].Sequence < items[j].Sequence })

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range items {
		e.fold(&items[i])
	}
	if status != nil && status.Pending {
		e.gate.SetPending(status.PlanJSON, previewFromPlan(status.PlanJSON), status.RunID)
		if status.RunID != "" {
			e.lastRun = status.RunID
		}
	}
	e.ready = true
	buffered := e.buffered
	e.buffered = nil
	for _, ev := range buffered {
		e.apply(ev)
	}
	e.revision++
	return nil
}

// fold translates one stored record into the shapes the live path
// produces. Record ids register with the dedup guard, so a live echo of
// the same event is dropped and a repeated record in the response folds
// only once. Replayed entries never stream.
func (e *Engine) fold(item *types.HistoryItem) {
	if !e.seen.Accept(types.EventID(item.ID)) {
		return
	}

	switch item.ItemType {
	case "user_message":
		e.appendHistory(item, types.EntryUserText)

	case "message", "assistant_message":
		// Revision feedback is stored as a message with the user role.
		if item.Role == "user" {
			e.appendHistory(item, types.EntryUserText)
		} else {
			e.appendHistory(item, types.EntryAssistantText)
		}

	case "thought":
		e.appendHistory(item, types.EntryThought)

	case "agent_start":
		e.appendHistory(item, types.EntryAgentStart)

	case "tool_call":
		en := e.appendHistory(item, types.EntryTool)
		en.ToolName = item.ToolName
		en.ToolArgs = item.ToolArgs
		en.ToolStatus = types.ToolRunning
		if item.ToolStatus == string(types.ToolCompleted) {
			en.ToolStatus = types.ToolCompleted
			en.ToolOutput = item.ToolOutput
		}

	case "tool_result":
		e.completeTool(item.Agent, item.ToolName, item.ToolArgs, item.ToolOutput, item.Content)

	case "critique_document", "critique":
		e.critiques.Record(item.Iteration, item.Content)
		en := e.appendHistory(item, types.EntryCritique)
		en.Iteration = item.Iteration

	case "draft_updated":
		en := e.recordDraftUpdate(item.Agent, item.Content, item.Version, item.Iteration)
		en.Timestamp = item.CreatedAt

	case "artifact":
		e.recordArtifact(item.Agent, item.ArtifactType, item.ArtifactTitle, item.Content, item.Version, item.Iteration)
		// recordArtifact appended the entry; stamp the stored timestamp.
		if last := e.tl.Last(); last != nil {
			last.Timestamp = item.CreatedAt
		}

	default:
		// log, status, and anything newer render as system lines.
		e.appendHistory(item, types.EntrySystemLog)
	}
	e.revision++
}

// appendHistory adds a non-streaming entry carrying the stored record's
// fields.
func (e *Engine) appendHistory(item *types.HistoryItem, kind types.EntryKind) *types.TimelineEntry {
	return e.tl.Append(&types.TimelineEntry{
		Kind:      kind,
		AgentName: item.Agent,
		Content:   item.Content,
		Timestamp: item.CreatedAt,
		Iteration: item.Iteration,
		Version:   item.Version,
	})
}

// previewFromPlan pulls a human-readable preview out of the stored plan
// payload, degrading to a placeholder when none is embedded.
func previewFromPlan(planJSON string) string {
	if planJSON == "" {
		return placeholderPreview
	}
	var plan struct {
		Preview string `json:"preview"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal([]byte(planJSON), &plan); err != nil {
		return placeholderPreview
	}
	if plan.Preview != "" {
		return plan.Preview
	}
	if plan.Title != "" {
		return plan.Title
	}
	return placeholderPreview
}
