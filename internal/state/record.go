// internal/state/record.go
package state

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

// TranscriptStore is a JSONL-backed append-only capture of accepted raw
// events, stored per-session in sessions/<sessionID>/transcript.jsonl.
// It exists for debugging and offline replay; it is not client state.
type TranscriptStore struct {
	root  string
	mu    sync.Mutex
	locks map[types.SessionID]*sync.Mutex
}

// NewTranscriptStore creates a file-backed TranscriptStore rooted at the
// given directory.
func NewTranscriptStore(root string) *TranscriptStore {
	return &TranscriptStore{
		root:  root,
		locks: make(map[types.SessionID]*sync.Mutex),
	}
}

// getLock returns the per-session mutex, creating one if it doesn't exist.
func (s *TranscriptStore) getLock(sessionID types.SessionID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lock, ok := s.locks[sessionID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	s.locks[sessionID] = lock
	return lock
}

func (s *TranscriptStore) transcriptPath(sessionID types.SessionID) string {
	return filepath.Join(s.root, "sessions", string(sessionID), "transcript.jsonl")
}

// Record appends one event to the session's transcript.
func (s *TranscriptStore) Record(_ context.Context, sessionID types.SessionID, ev *types.Event) error {
	lock := s.getLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Dir(s.transcriptPath(sessionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	f, err := os.OpenFile(s.transcriptPath(sessionID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return nil
}

// Replay reads back every captured event for the session in stored order.
func (s *TranscriptStore) Replay(_ context.Context, sessionID types.SessionID) ([]*types.Event, error) {
	lock := s.getLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(s.transcriptPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var events []*types.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev types.Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			return nil, fmt.Errorf("unmarshal event: %w", err)
		}
		events = append(events, &ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}

	return events, nil
}

// Count returns the number of captured events for the session.
func (s *TranscriptStore) Count(ctx context.Context, sessionID types.SessionID) (int64, error) {
	events, err := s.Replay(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return int64(len(events)), nil
}
