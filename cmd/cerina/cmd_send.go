package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/naveenvasou/cerina-v0/internal/client"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

var sendSessionID string

func init() {
	sendCmd.Flags().StringVarP(&sendSessionID, "session", "s", "", "session to send into (empty starts a new one)")
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a single message without opening the viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sessionID := types.SessionID(sendSessionID)
		cli := client.New(cfg.ServerURL, cfg.UserID)
		if err := cli.Connect(ctx, sessionID); err != nil {
			return err
		}
		defer cli.Close()

		if err := cli.SendChat(ctx, args[0], sessionID); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		fmt.Println("Message sent.")
		return nil
	},
}
