// internal/tui/model.go
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

type pane int

const (
	paneTimeline pane = iota
	paneDraft
	paneCritique
)

// connectionProbe reports whether the live feed is up.
type connectionProbe func() bool

// Model is the terminal viewer over one engine. It polls the engine's
// revision counter on a short tick and re-renders only when state moved.
type Model struct {
	eng       *engine.Engine
	connected connectionProbe

	vp     viewport.Model
	input  textinput.Model
	spin   spinner.Model
	pane   pane
	width  int
	height int

	revision uint64
	seen     bool
	lastErr  error
}

type tickMsg time.Time

type intentErrMsg struct{ err error }

func New(eng *engine.Engine, connected connectionProbe) Model {
	in := textinput.New()
	in.Placeholder = "message the workflow…"
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		eng:       eng,
		connected: connected,
		input:     in,
		spin:      sp,
		vp:        viewport.New(80, 20),
	}
}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 5
		m.input.Width = msg.Width - 4
		m.refresh(m.eng.Snapshot())
		return m, nil

	case tickMsg:
		if rev := m.eng.Revision(); rev != m.revision || !m.seen {
			m.revision = rev
			m.seen = true
			m.refresh(m.eng.Snapshot())
		}
		return m, tick()

	case intentErrMsg:
		m.lastErr = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.pane = (m.pane + 1) % 3
			m.refresh(m.eng.Snapshot())
			return m, nil
		case "ctrl+a":
			return m, m.intent(func(ctx context.Context) error { return m.eng.Approve(ctx) })
		case "ctrl+r":
			return m, m.intent(func(ctx context.Context) error { return m.eng.Reject(ctx) })
		case "ctrl+x":
			return m, m.intent(func(ctx context.Context) error { return m.eng.Stop(ctx) })
		case "ctrl+g":
			return m, m.intent(func(ctx context.Context) error { return m.eng.Resume(ctx) })
		case "ctrl+p":
			m.browse(-1)
			return m, nil
		case "ctrl+n":
			m.browse(1)
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m, m.intent(func(ctx context.Context) error { return m.eng.SendMessage(ctx, text) })
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// intent runs an engine intent off the update loop.
func (m Model) intent(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			return intentErrMsg{err}
		}
		return nil
	}
}

// browse moves the version pointer of the visible canvas.
func (m *Model) browse(delta int) {
	s := m.eng.Snapshot()
	switch m.pane {
	case paneDraft:
		m.eng.SelectDraft(s.CurrentDraft + delta)
	case paneCritique:
		m.eng.SelectCritique(s.CurrentCritique + delta)
	}
	m.refresh(m.eng.Snapshot())
}

// refresh re-renders the viewport from a snapshot.
func (m *Model) refresh(s engine.State) {
	wasAtBottom := m.vp.AtBottom()
	switch m.pane {
	case paneDraft:
		m.vp.SetContent(renderDraftPane(s))
	case paneCritique:
		m.vp.SetContent(renderCritiquePane(s))
	default:
		m.vp.SetContent(renderTimeline(s.Timeline))
	}
	if wasAtBottom {
		m.vp.GotoBottom()
	}
}

func (m Model) headerLine(s engine.State) string {
	conn := "offline"
	if m.connected != nil && m.connected() {
		conn = "connected"
	}
	state := "idle"
	if s.Workflow.Running {
		state = m.spin.View() + " running"
	} else if s.Workflow.CanResume {
		state = "paused (ctrl+g resumes)"
	}
	line := fmt.Sprintf("cerina · %s · %s · %s", shortSession(s.SessionID), conn, state)
	if s.Reflection > 0 {
		line += fmt.Sprintf(" · reflection %d", s.Reflection)
	}
	return headerStyle.Render(line)
}

func shortSession(id types.SessionID) string {
	if len(id) > 8 {
		return string(id[:8])
	}
	if id == "" {
		return "new session"
	}
	return string(id)
}

func (m Model) View() string {
	s := m.eng.Snapshot()

	var b strings.Builder
	b.WriteString(m.headerLine(s))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	if s.Approval.IsPending {
		b.WriteString(renderApprovalBar(s.Approval))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	help := "tab panes · ctrl+p/ctrl+n versions · ctrl+x stop · esc quit"
	if m.lastErr != nil {
		help = "error: " + m.lastErr.Error()
	}
	b.WriteString(logStyle.Render(help))
	return b.String()
}
