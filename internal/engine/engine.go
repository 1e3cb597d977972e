// internal/engine/engine.go
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/naveenvasou/cerina-v0/internal/types"
)

// doneMarker is the backend's internal completion signal. It should never
// reach the client, but a leaked one must not become a visible log line.
const doneMarker = "__DONE__"

// Engine reconciles the two event sources for one session into a single
// coherent state: the timeline, the draft and critique lineages, the
// agent memory snapshots, and the approval gate. All state is session
// scoped; construct a fresh Engine when the active session changes and
// discard the old one. Methods are safe for concurrent use, but events
// are applied strictly one at a time in arrival order.
type Engine struct {
	mu       sync.RWMutex
	sender   types.Sender
	recorder types.Recorder

	sessionID types.SessionID
	lastRun   types.WorkflowRunID

	seen      *dedupGuard
	tl        *timeline
	stream    *streamCoalescer
	drafts    draftLineage
	critiques critiqueLineage
	gate      approvalGate

	plan       *types.PlanArtifact
	memories   map[string]types.AgentMemory
	workflow   types.WorkflowStatus
	reflection int

	// Bootstrap gating: events that arrive before history reconciliation
	// completes are buffered and replayed through the normal path.
	bootstrapped bool
	ready        bool
	buffered     []*types.Event

	revision uint64
}

// New creates an engine for the given session. The sender may be nil for
// read-only uses; intent methods then fail. Call Bootstrap before (or
// instead of) feeding live events: the engine buffers until it runs.
func New(sessionID types.SessionID, sender types.Sender) *Engine {
	tl := newTimeline()
	return &Engine{
		sender:    sender,
		sessionID: sessionID,
		seen:      newDedupGuard(),
		tl:        tl,
		stream:    newStreamCoalescer(tl),
		memories:  make(map[string]types.AgentMemory),
	}
}

// SetRecorder attaches a transcript recorder for accepted events.
func (e *Engine) SetRecorder(r types.Recorder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recorder = r
}

// SessionID returns the session the engine is scoped to. It changes only
// when the backend redirects via a session_created event.
func (e *Engine) SessionID() types.SessionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessionID
}

// Revision returns a counter that increments on every state change, so
// callers can poll cheaply for "anything new?".
func (e *Engine) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Apply ingests one live event. Until Bootstrap completes the event is
// buffered; afterwards it flows dedup guard, stream finalization, then
// kind-specific handling.
func (e *Engine) Apply(ev *types.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		e.buffered = append(e.buffered, ev)
		return
	}
	e.apply(ev)
}

// apply runs the reducer for one event. Caller holds the lock.
func (e *Engine) apply(ev *types.Event) {
	if !e.seen.Accept(ev.ID) {
		slog.Debug("duplicate event dropped", "event_id", string(ev.ID), "kind", string(ev.Kind))
		return
	}
	if e.recorder != nil {
		if err := e.recorder.Record(context.Background(), e.sessionID, ev); err != nil {
			slog.Warn("transcript record failed", "error", err)
		}
	}
	if ev.RunID != "" {
		e.lastRun = ev.RunID
	}

	// A streaming entry must never dangle past an unrelated event.
	if !ev.IsChunk() {
		e.stream.Finalize()
	}

	switch ev.Kind {
	case types.EventMessageChunk:
		e.stream.ApplyChunk(types.EntryAssistantText, ev.Agent, ev.Content)

	case types.EventThoughtChunk:
		e.stream.ApplyChunk(types.EntryThought, ev.Agent, ev.Content)

	case types.EventMessageEnd:
		// finalization above is the whole effect

	case types.EventStatus:
		if ev.Content == doneMarker {
			e.workflow.Running = false
			break
		}
		e.tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog, AgentName: ev.Agent, Content: ev.Content})

	case types.EventReflectionStatus:
		if ev.Iteration > 0 {
			e.reflection = ev.Iteration
		}
		e.tl.Append(&types.TimelineEntry{
			Kind:      types.EntrySystemLog,
			AgentName: ev.Agent,
			Content:   ev.Content,
			Iteration: ev.Iteration,
		})

	case types.EventError:
		e.tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog, Content: ev.Content})

	case types.EventMessage:
		e.tl.Append(&types.TimelineEntry{Kind: types.EntryAssistantText, AgentName: ev.Agent, Content: ev.Content})

	case types.EventUserMessage:
		e.tl.Append(&types.TimelineEntry{Kind: types.EntryUserText, Content: ev.Content})

	case types.EventThought:
		e.tl.Append(&types.TimelineEntry{Kind: types.EntryThought, AgentName: ev.Agent, Content: ev.Content})

	case types.EventAgentStart:
		e.tl.Append(&types.TimelineEntry{Kind: types.EntryAgentStart, AgentName: ev.Agent, Content: ev.Content})

	case types.EventToolCall:
		e.tl.Append(&types.TimelineEntry{
			Kind:       types.EntryTool,
			AgentName:  ev.Agent,
			Content:    ev.Content,
			ToolName:   ev.ToolName,
			ToolArgs:   ev.ToolArgs,
			ToolStatus: types.ToolRunning,
		})

	case types.EventToolResult:
		e.completeTool(ev.Agent, ev.ToolName, ev.ToolArgs, ev.ToolOut, ev.Content)

	case types.EventArtifact:
		e.recordArtifact(ev.Agent, ev.ArtType, ev.ArtTitle, ev.Content, ev.Version, ev.Iteration)

	case types.EventCritiqueDocument:
		e.critiques.Record(ev.Iteration, ev.Content)
		e.tl.Append(&types.TimelineEntry{
			Kind:      types.EntryCritique,
			AgentName: ev.Agent,
			Content:   ev.Content,
			Iteration: ev.Iteration,
		})

	case types.EventDraftUpdated:
		e.recordDraftUpdate(ev.Agent, ev.Content, ev.Version, ev.Iteration)

	case types.EventAgentMemory:
		e.memories[ev.Agent] = types.AgentMemory{
			Agent:      ev.Agent,
			Messages:   ev.Messages,
			Scratchpad: ev.Scratch,
			At:         time.Now(),
		}

	case types.EventPlanPendingApproval:
		e.gate.SetPending(ev.Content, ev.ArtTitle, ev.RunID)
		e.tl.Append(&types.TimelineEntry{
			Kind:    types.EntrySystemLog,
			Content: "Plan ready for review. Waiting for user approval.",
		})

	case types.EventSessionCreated:
		if ev.SessionID != "" {
			e.sessionID = ev.SessionID
		}

	case types.EventWorkflowStatus:
		e.workflow = types.WorkflowStatus{
			Running:      ev.Running,
			CanResume:    ev.CanResume,
			PendingNodes: ev.PendingNodes,
		}

	default:
		slog.Debug("ignoring unknown event kind", "kind", string(ev.Kind))
		return
	}
	e.revision++
}

// completeTool transitions the most recent running invocation of the tool
// to completed. When no running call exists (missed by dedup or history
// gaps) it degrades to appending a completed entry.
func (e *Engine) completeTool(agent, name string, args map[string]any, output, content string) {
	patched := e.tl.PatchLastMatching(
		func(en *types.TimelineEntry) bool {
			return en.Kind == types.EntryTool && en.ToolName == name && en.ToolStatus == types.ToolRunning
		},
		func(en *types.TimelineEntry) {
			en.ToolOutput = output
			en.ToolStatus = types.ToolCompleted
			if content != "" {
				en.Content = content
			}
		},
	)
	if !patched {
		e.tl.Append(&types.TimelineEntry{
			Kind:       types.EntryTool,
			AgentName:  agent,
			Content:    content,
			ToolName:   name,
			ToolArgs:   args,
			ToolOutput: output,
			ToolStatus: types.ToolCompleted,
		})
	}
}

// recordArtifact folds one artifact into the right lineage and appends
// its timeline entry. An initial draft starts a fresh drafting pass and
// resets the draft lineage; revisions and the final exercise append.
// Critique artifacts always append. The same rules serve the live path
// and the history fold so both converge on identical state.
func (e *Engine) recordArtifact(agent, artType, title, content string, version, iteration int) {
	kind := types.EntryArtifact
	switch artType {
	case types.ArtifactPlan, types.ArtifactProtocol:
		e.plan = &types.PlanArtifact{Title: title, Content: content, Timestamp: time.Now()}
	case types.ArtifactDraft:
		e.drafts.Reset()
		v := e.drafts.Record(version, content, types.DraftStatusDraft, iteration, "")
		version = v.Version
	case types.ArtifactDraftRevision:
		v := e.drafts.Record(version, content, types.DraftStatusRevised, iteration, "")
		version = v.Version
	case types.ArtifactExercise:
		v := e.drafts.Record(version, content, types.DraftStatusFinal, iteration, "")
		version = v.Version
	case types.ArtifactCritique:
		e.critiques.Record(iteration, content)
		kind = types.EntryCritique
	}
	e.tl.Append(&types.TimelineEntry{
		Kind:          kind,
		AgentName:     agent,
		Content:       content,
		ArtifactType:  artType,
		ArtifactTitle: title,
		Version:       version,
		Iteration:     iteration,
	})
}

// recordDraftUpdate folds one draft-update payload. The first update of
// a session opens the lineage as the initial draft; later ones revise
// it. Shared by the live path and the history fold so both converge.
func (e *Engine) recordDraftUpdate(agent, content string, version, iteration int) *types.TimelineEntry {
	status := types.DraftStatusRevised
	if len(e.drafts.versions) == 0 {
		status = types.DraftStatusDraft
	}
	v := e.drafts.Record(version, content, status, iteration, "")
	return e.tl.Append(&types.TimelineEntry{
		Kind:         types.EntryArtifact,
		AgentName:    agent,
		Content:      content,
		ArtifactType: types.ArtifactDraftRevision,
		Version:      v.Version,
		Iteration:    iteration,
	})
}

// SendMessage emits the user's free text. While an approval is pending
// the text is reinterpreted as a revise decision instead of a chat
// message, per the gate contract. The local entry is appended only
// after the send succeeds, so a failed send leaves no phantom message.
func (e *Engine) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	e.mu.Lock()
	if e.gate.Pending() {
		e.mu.Unlock()
		return e.Revise(ctx, text)
	}
	sessionID := e.sessionID
	e.mu.Unlock()

	if e.sender == nil {
		return fmt.Errorf("send message: no sender configured")
	}
	if err := e.sender.SendChat(ctx, text, sessionID); err != nil {
		return err
	}

	e.mu.Lock()
	e.tl.Append(&types.TimelineEntry{Kind: types.EntryUserText, Content: text})
	e.revision++
	e.mu.Unlock()
	return nil
}

// Approve resolves the pending approval positively.
func (e *Engine) Approve(ctx context.Context) error {
	return e.decide(ctx, types.DecisionApproved, "", "Plan approved by user")
}

// Reject resolves the pending approval negatively.
func (e *Engine) Reject(ctx context.Context) error {
	return e.decide(ctx, types.DecisionRejected, "", "Plan rejected by user")
}

// Revise resolves the pending approval with revision feedback.
func (e *Engine) Revise(ctx context.Context, feedback string) error {
	return e.decide(ctx, types.DecisionRevised, feedback, "Revision requested: "+feedback)
}

// decide emits exactly one decision and one system log entry, then
// reopens the gate. The gate stays pending until the send succeeds: a
// failed send must leave the request retryable, not half-resolved.
func (e *Engine) decide(ctx context.Context, d types.Decision, feedback, logLine string) error {
	e.mu.Lock()
	if !e.gate.Pending() {
		e.mu.Unlock()
		return fmt.Errorf("send decision: no approval pending")
	}
	req := e.gate.Request()
	e.mu.Unlock()

	if e.sender == nil {
		return fmt.Errorf("send decision: no sender configured")
	}
	if err := e.sender.SendDecision(ctx, d, feedback, req.RunID); err != nil {
		return err
	}

	e.mu.Lock()
	e.gate.Clear()
	e.tl.Append(&types.TimelineEntry{Kind: types.EntrySystemLog, Content: logLine})
	e.revision++
	e.mu.Unlock()
	return nil
}

// Stop asks the orchestrator to halt the running workflow.
func (e *Engine) Stop(ctx context.Context) error {
	if e.sender == nil {
		return fmt.Errorf("stop workflow: no sender configured")
	}
	return e.sender.StopWorkflow(ctx)
}

// Resume asks the orchestrator to continue from its last checkpoint.
func (e *Engine) Resume(ctx context.Context) error {
	if e.sender == nil {
		return fmt.Errorf("resume workflow: no sender configured")
	}
	e.mu.RLock()
	runID := e.lastRun
	e.mu.RUnlock()
	return e.sender.ResumeWorkflow(ctx, runID)
}

// SelectDraft points the draft display at an existing version; the stored
// sequence is untouched and unknown versions are ignored.
func (e *Engine) SelectDraft(version int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drafts.Select(version)
	e.revision++
}

// SelectCritique points the critique display at an existing iteration.
func (e *Engine) SelectCritique(iteration int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.critiques.Select(iteration)
	e.revision++
}

// State is a read-only snapshot of the engine's derived views.
type State struct {
	SessionID       types.SessionID
	Timeline        []types.TimelineEntry
	Drafts          []types.DraftVersion
	CurrentDraft    int
	Critiques       []types.CritiqueDocument
	CurrentCritique int
	Plan            *types.PlanArtifact
	Approval        types.ApprovalRequest
	Workflow        types.WorkflowStatus
	Reflection      int
	Memories        map[string]types.AgentMemory
	Revision        uint64
}

// Snapshot copies the current state for rendering.
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	mems := make(map[string]types.AgentMemory, len(e.memories))
	for k, v := range e.memories {
		mems[k] = v
	}
	var plan *types.PlanArtifact
	if e.plan != nil {
		p := *e.plan
		plan = &p
	}
	return State{
		SessionID:       e.sessionID,
		Timeline:        e.tl.Snapshot(),
		Drafts:          append([]types.DraftVersion(nil), e.drafts.versions...),
		CurrentDraft:    e.drafts.current,
		Critiques:       append([]types.CritiqueDocument(nil), e.critiques.docs...),
		CurrentCritique: e.critiques.current,
		Plan:            plan,
		Approval:        e.gate.Request(),
		Workflow:        e.workflow,
		Reflection:      e.reflection,
		Memories:        mems,
		Revision:        e.revision,
	}
}
