// internal/types/event.go
package types

import (
	"encoding/json"
	"fmt"
)

// EventKind discriminates inbound frames from the orchestrator.
type EventKind string

const (
	EventStatus              EventKind = "status"
	EventMessage             EventKind = "message"
	EventUserMessage         EventKind = "user_message"
	EventThought             EventKind = "thought"
	EventThoughtChunk        EventKind = "thought_chunk"
	EventMessageChunk        EventKind = "message_chunk"
	EventMessageEnd          EventKind = "message_end"
	EventAgentStart          EventKind = "agent_start"
	EventToolCall            EventKind = "tool_call"
	EventToolResult          EventKind = "tool_result"
	EventArtifact            EventKind = "artifact"
	EventAgentMemory         EventKind = "agent_memory"
	EventCritiqueDocument    EventKind = "critique_document"
	EventDraftUpdated        EventKind = "draft_updated"
	EventReflectionStatus    EventKind = "reflection_status"
	EventPlanPendingApproval EventKind = "plan_pending_approval"
	EventSessionCreated      EventKind = "session_created"
	EventWorkflowStatus      EventKind = "workflow_status"
	EventError               EventKind = "error"
)

// Artifact subtypes the workflow produces. Plans live outside the draft
// lineage; draft/draft_revision/cbt_exercise form the draft lineage.
const (
	ArtifactPlan          = "plan"
	ArtifactProtocol      = "clinical_protocol"
	ArtifactDraft         = "draft"
	ArtifactDraftRevision = "draft_revision"
	ArtifactExercise      = "cbt_exercise"
	ArtifactCritique      = "critique_document"
)

// Event is one inbound frame. Fields beyond Kind are populated per kind;
// an Event is never mutated after receipt. ID is the backend event id
// when present and is the deduplication key.
type Event struct {
	ID        EventID        `json:"id,omitempty"`
	Kind      EventKind      `json:"type"`
	Agent     string         `json:"agent,omitempty"`
	Content   string         `json:"content,omitempty"`
	ToolName  string         `json:"tool_name,omitempty"`
	ToolArgs  map[string]any `json:"tool_args,omitempty"`
	ToolOut   string         `json:"tool_output,omitempty"`
	ArtType   string         `json:"artifact_type,omitempty"`
	ArtTitle  string         `json:"artifact_title,omitempty"`
	Messages  []MemoryTurn   `json:"messages,omitempty"`
	Scratch   string         `json:"scratchpad,omitempty"`
	Iteration int            `json:"iteration,omitempty"`
	Version   int            `json:"version,omitempty"`

	// session_created / workflow_status fields
	SessionID    SessionID     `json:"session_id,omitempty"`
	RunID        WorkflowRunID `json:"workflow_run_id,omitempty"`
	Running      bool          `json:"running,omitempty"`
	CanResume    bool          `json:"canResume,omitempty"`
	PendingNodes []string      `json:"pendingNodes,omitempty"`
}

// MemoryTurn is one entry of an agent's internal message history.
type MemoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ParseEvent decodes a raw frame and checks structural shape. A frame
// without a type discriminator is malformed; unknown kinds are returned
// as-is so callers can skip them without failing the stream.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if ev.Kind == "" {
		return nil, fmt.Errorf("decode event: missing type discriminator")
	}
	return &ev, nil
}

// IsChunk reports whether the event is a streaming fragment.
func (e *Event) IsChunk() bool {
	return e.Kind == EventMessageChunk || e.Kind == EventThoughtChunk
}
