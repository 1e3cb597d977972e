package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/naveenvasou/cerina-v0/internal/client"
	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Print a session's reconciled timeline",
	Long: `Fetches the stored history and replays it through the reconciliation
engine, printing the resulting timeline and artifact lineages. This is
the same state the live viewer starts from.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		sessionID := types.SessionID(args[0])
		eng := engine.New(sessionID, nil)
		hist := client.NewHistoryClient(cfg.ServerURL, cfg.UserID)

		ctx := context.Background()
		if err := eng.Bootstrap(ctx, hist); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}

		s := eng.Snapshot()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tKIND\tAGENT\tCONTENT")
		for _, e := range s.Timeline {
			content := e.Content
			if e.Kind == types.EntryTool {
				content = e.ToolName + " [" + string(e.ToolStatus) + "]"
			}
			if r := []rune(content); len(r) > 80 {
				content = string(r[:80]) + "…"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Timestamp.Format("15:04:05"), e.Kind, e.AgentName, content)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if len(s.Drafts) > 0 {
			fmt.Printf("\nDrafts: %d versions, current v%d\n", len(s.Drafts), s.CurrentDraft)
		}
		if len(s.Critiques) > 0 {
			fmt.Printf("Critiques: %d iterations, current %d\n", len(s.Critiques), s.CurrentCritique)
		}
		if s.Approval.IsPending {
			fmt.Println("\nA plan is pending approval. Run 'cerina watch' to decide.")
		}
		return nil
	},
}
