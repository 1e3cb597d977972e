// internal/types/ids.go
package types

import "github.com/google/uuid"

type SessionID string
type WorkflowRunID string
type EntryID string
type EventID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func NewWorkflowRunID() WorkflowRunID {
	return WorkflowRunID(uuid.New().String())
}

func NewEntryID() EntryID {
	return EntryID(uuid.New().String())
}

func NewEventID() EventID {
	return EventID(uuid.New().String())
}
