// internal/client/client.go
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

// Client is the live transport: one websocket to the orchestrator's
// /ws/chat endpoint, carrying events in and intents out. The engine never
// sees this type; it gets the Sender interface.
type Client struct {
	baseURL string
	userID  string

	mu        sync.Mutex // serializes writes to the socket
	ws        *websocket.Conn
	connected atomic.Bool
}

var _ types.Sender = (*Client)(nil)

func New(baseURL, userID string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), userID: userID}
}

// wsURL converts the configured http(s) base into the chat socket URL.
func (c *Client) wsURL(sessionID types.SessionID) string {
	base := c.baseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	url := base + "/ws/chat"
	sep := "?"
	if sessionID != "" {
		url += sep + "session_id=" + string(sessionID)
		sep = "&"
	}
	if c.userID != "" {
		url += sep + "user_id=" + c.userID
	}
	return url
}

// Connect dials the chat socket for the given session.
func (c *Client) Connect(_ context.Context, sessionID types.SessionID) error {
	ws, err := websocket.Dial(c.wsURL(sessionID), "", c.baseURL+"/")
	if err != nil {
		return fmt.Errorf("dial chat socket: %w", err)
	}
	c.mu.Lock()
	c.ws = ws
	c.mu.Unlock()
	c.connected.Store(true)
	return nil
}

// Connected reports whether the socket is up. It is the connectivity
// indicator the UI surfaces; reconnection policy lives with the caller.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Close tears down the socket.
func (c *Client) Close() error {
	c.connected.Store(false)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return nil
	}
	err := c.ws.Close()
	c.ws = nil
	return err
}

// Run reads frames and applies them to the engine until the context ends
// or the connection drops. Malformed frames are logged and skipped; they
// never terminate the session.
func (c *Client) Run(ctx context.Context, eng *engine.Engine) error {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil {
		return fmt.Errorf("run: not connected")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		c.Close()
		return ctx.Err()
	})
	g.Go(func() error {
		defer c.connected.Store(false)
		for {
			var raw []byte
			if err := websocket.Message.Receive(ws, &raw); err != nil {
				return fmt.Errorf("receive frame: %w", err)
			}
			ev, err := types.ParseEvent(raw)
			if err != nil {
				slog.Warn("dropping malformed frame", "error", err)
				continue
			}
			eng.Apply(ev)
		}
	})
	return g.Wait()
}

// outbound frame shapes mirror the orchestrator's inbound message types.
type chatFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type decisionFrame struct {
	Type     string `json:"type"`
	Decision string `json:"decision"`
	Feedback string `json:"feedback"`
	RunID    string `json:"workflow_run_id,omitempty"`
}

type controlFrame struct {
	Type  string `json:"type"`
	RunID string `json:"workflow_run_id,omitempty"`
}

func (c *Client) SendChat(_ context.Context, text string, sessionID types.SessionID) error {
	return c.send(chatFrame{Type: "chat_message", Message: text, SessionID: string(sessionID)})
}

func (c *Client) SendDecision(_ context.Context, decision types.Decision, feedback string, runID types.WorkflowRunID) error {
	return c.send(decisionFrame{Type: "plan_decision", Decision: string(decision), Feedback: feedback, RunID: string(runID)})
}

func (c *Client) StopWorkflow(context.Context) error {
	return c.send(controlFrame{Type: "stop_workflow"})
}

func (c *Client) ResumeWorkflow(_ context.Context, runID types.WorkflowRunID) error {
	return c.send(controlFrame{Type: "resume_workflow", RunID: string(runID)})
}

func (c *Client) send(frame any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return fmt.Errorf("send: not connected")
	}
	if err := websocket.JSON.Send(c.ws, frame); err != nil {
		return fmt.Errorf("send frame: %w", err)
	}
	return nil
}
