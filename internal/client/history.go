// internal/client/history.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

// HistoryClient fetches the session bootstrap data over the REST API.
type HistoryClient struct {
	baseURL string
	userID  string
	http    *http.Client
}

var _ types.HistorySource = (*HistoryClient)(nil)

func NewHistoryClient(baseURL, userID string) *HistoryClient {
	return &HistoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *HistoryClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("user-id", h.userID)

	resp, err := h.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// ChatHistory returns the session's flat, sequence-ordered history list.
func (h *HistoryClient) ChatHistory(ctx context.Context, sessionID types.SessionID) ([]types.HistoryItem, error) {
	var items []types.HistoryItem
	if err := h.get(ctx, "/api/sessions/"+string(sessionID)+"/chat-history", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// workflowRun is the subset of the runs listing the client reads.
type workflowRun struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	HITLPending     bool   `json:"hitl_pending"`
	PendingPlanJSON string `json:"pending_plan_json"`
}

// ApprovalStatus derives the HITL state from the session's workflow runs:
// the newest run awaiting approval supplies the plan payload. Runs are
// listed newest first.
func (h *HistoryClient) ApprovalStatus(ctx context.Context, sessionID types.SessionID) (*types.ApprovalStatus, error) {
	var runs []workflowRun
	if err := h.get(ctx, "/api/sessions/"+string(sessionID)+"/workflow-runs", &runs); err != nil {
		return nil, err
	}
	for _, run := range runs {
		if run.HITLPending || run.Status == "awaiting_approval" {
			return &types.ApprovalStatus{
				Pending:  true,
				PlanJSON: run.PendingPlanJSON,
				RunID:    types.WorkflowRunID(run.ID),
			}, nil
		}
	}
	return &types.ApprovalStatus{}, nil
}

// Sessions lists the user's sessions, newest first.
func (h *HistoryClient) Sessions(ctx context.Context) ([]types.SessionInfo, error) {
	var sessions []types.SessionInfo
	if err := h.get(ctx, "/api/sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
