package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naveenvasou/cerina-v0/internal/client"
	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/state"
	"github.com/naveenvasou/cerina-v0/internal/tui"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [session-id]",
	Short: "Watch a session live in the terminal",
	Long: `Connects to the orchestrator, reconciles the session's stored history
with the live event feed, and renders the result. Without a session id
the backend creates a new session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file for this command.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "cerina.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	var sessionID types.SessionID
	if len(args) > 0 {
		sessionID = types.SessionID(args[0])
	}

	cli := client.New(cfg.ServerURL, cfg.UserID)
	eng := engine.New(sessionID, cli)
	if cfg.Transcript {
		eng.SetRecorder(state.NewTranscriptStore(cfg.DataDir))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := cli.Connect(ctx, sessionID); err != nil {
		return err
	}
	defer cli.Close()

	// Feed and bootstrap run behind the UI; the engine buffers live
	// events until the bootstrap lands.
	go func() {
		if err := cli.Run(ctx, eng); err != nil && ctx.Err() == nil {
			slog.Error("live feed stopped", "error", err)
		}
	}()
	go func() {
		// A brand-new session has no history to fetch.
		var src types.HistorySource
		if sessionID != "" {
			src = client.NewHistoryClient(cfg.ServerURL, cfg.UserID)
		}
		if err := eng.Bootstrap(ctx, src); err != nil {
			slog.Error("bootstrap failed", "error", err)
		}
	}()

	p := tea.NewProgram(tui.New(eng, cli.Connected), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
