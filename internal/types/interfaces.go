// internal/types/interfaces.go
package types

import "context"

// Sender carries outbound intents to the orchestrator. The engine calls
// it; it does not know how bytes cross the wire.
type Sender interface {
	SendChat(ctx context.Context, text string, sessionID SessionID) error
	SendDecision(ctx context.Context, decision Decision, feedback string, runID WorkflowRunID) error
	StopWorkflow(ctx context.Context) error
	ResumeWorkflow(ctx context.Context, runID WorkflowRunID) error
}

// HistorySource provides the bootstrap fetches for a session: the flat
// ordered history list and the HITL approval status.
type HistorySource interface {
	ChatHistory(ctx context.Context, sessionID SessionID) ([]HistoryItem, error)
	ApprovalStatus(ctx context.Context, sessionID SessionID) (*ApprovalStatus, error)
}

// Recorder captures accepted raw events, for debugging and replay.
type Recorder interface {
	Record(ctx context.Context, sessionID SessionID, ev *Event) error
}
