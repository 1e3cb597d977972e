// internal/types/models.go
package types

import "time"

// EntryKind classifies what a timeline row renders as.
type EntryKind string

const (
	EntrySystemLog     EntryKind = "system-log"
	EntryUserText      EntryKind = "user-text"
	EntryAssistantText EntryKind = "assistant-text"
	EntryAgentStart    EntryKind = "agent-start"
	EntryThought       EntryKind = "thought"
	EntryTool          EntryKind = "tool"
	EntryArtifact      EntryKind = "artifact"
	EntryCritique      EntryKind = "critique"
)

type ToolStatus string

const (
	ToolRunning   ToolStatus = "running"
	ToolCompleted ToolStatus = "completed"
)

// TimelineEntry is one UI-visible record. Entries are appended in receipt
// order and never reordered; only IsStreaming and the tool status/output
// fields are patched in place after append.
type TimelineEntry struct {
	ID          EntryID   `json:"id"`
	Kind        EntryKind `json:"kind"`
	AgentName   string    `json:"agent_name,omitempty"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	IsStreaming bool      `json:"is_streaming"`

	ToolName   string         `json:"tool_name,omitempty"`
	ToolArgs   map[string]any `json:"tool_args,omitempty"`
	ToolOutput string         `json:"tool_output,omitempty"`
	ToolStatus ToolStatus     `json:"tool_status,omitempty"`

	ArtifactType  string `json:"artifact_type,omitempty"`
	ArtifactTitle string `json:"artifact_title,omitempty"`
	Iteration     int    `json:"iteration,omitempty"`
	Version       int    `json:"version,omitempty"`
}

type DraftStatus string

const (
	DraftStatusDraft   DraftStatus = "draft"
	DraftStatusRevised DraftStatus = "revised"
	DraftStatusFinal   DraftStatus = "final"
)

// DraftVersion is one record of the draft lineage. Versions are assigned
// once and never renumbered.
type DraftVersion struct {
	Version   int         `json:"version"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Status    DraftStatus `json:"status"`
	Iteration int         `json:"iteration,omitempty"`
	Changes   string      `json:"changes,omitempty"`
}

// CritiqueDocument is one record of the critique lineage.
type CritiqueDocument struct {
	Content   string    `json:"content"`
	Iteration int       `json:"iteration"`
	Timestamp time.Time `json:"timestamp"`
}

// PlanArtifact is the latest plan the workflow produced, kept apart from
// the draft lineage.
type PlanArtifact struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ApprovalRequest is the HITL pause. At most one is pending per session;
// a newer request replaces the stored payload.
type ApprovalRequest struct {
	IsPending bool          `json:"is_pending"`
	PlanJSON  string        `json:"plan_json,omitempty"`
	Preview   string        `json:"preview,omitempty"`
	RunID     WorkflowRunID `json:"workflow_run_id,omitempty"`
}

// Decision is the user's answer to a pending approval.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRevised  Decision = "revised"
	DecisionRejected Decision = "rejected"
)

// AgentMemory is the latest internal-state snapshot an agent emitted.
type AgentMemory struct {
	Agent      string       `json:"agent"`
	Messages   []MemoryTurn `json:"messages"`
	Scratchpad string       `json:"scratchpad"`
	At         time.Time    `json:"at"`
}

// WorkflowStatus mirrors the backend's workflow_status frame.
type WorkflowStatus struct {
	Running      bool     `json:"running"`
	CanResume    bool     `json:"can_resume"`
	PendingNodes []string `json:"pending_nodes,omitempty"`
}

// HistoryItem is one record of the flat chat-history bootstrap list,
// already ordered by Sequence on the backend.
type HistoryItem struct {
	ID       string `json:"id"`
	Sequence int    `json:"sequence"`
	ItemType string `json:"item_type"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	Agent    string `json:"agent_name,omitempty"`

	ToolName   string         `json:"tool_name,omitempty"`
	ToolArgs   map[string]any `json:"tool_args,omitempty"`
	ToolOutput string         `json:"tool_output,omitempty"`
	ToolStatus string         `json:"tool_status,omitempty"`

	ArtifactType  string `json:"artifact_type,omitempty"`
	ArtifactTitle string `json:"artifact_title,omitempty"`
	Iteration     int    `json:"iteration,omitempty"`
	Version       int    `json:"version,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ApprovalStatus is the one-shot HITL status polled at bootstrap.
type ApprovalStatus struct {
	Pending  bool          `json:"pending"`
	PlanJSON string        `json:"plan_json,omitempty"`
	RunID    WorkflowRunID `json:"workflow_run_id,omitempty"`
}

// SessionInfo describes one backend session for listings.
type SessionInfo struct {
	ID        SessionID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `json:"is_active"`
}
