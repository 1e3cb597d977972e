// internal/engine/approval.go
package engine

import "github.com/naveenvasou/cerina-v0/internal/types"

// approvalGate is the two-state HITL pause: open for normal interaction,
// or holding exactly one pending request. A new request replaces the
// stored payload; approvals never queue.
type approvalGate struct {
	req types.ApprovalRequest
}

// SetPending stores the request, replacing any previous one.
func (g *approvalGate) SetPending(planJSON, preview string, runID types.WorkflowRunID) {
	g.req = types.ApprovalRequest{
		IsPending: true,
		PlanJSON:  planJSON,
		Preview:   preview,
		RunID:     runID,
	}
}

// Clear reopens the gate.
func (g *approvalGate) Clear() {
	g.req = types.ApprovalRequest{}
}

func (g *approvalGate) Pending() bool {
	return g.req.IsPending
}

// Request returns the stored request (zero-valued while open).
func (g *approvalGate) Request() types.ApprovalRequest {
	return g.req
}
