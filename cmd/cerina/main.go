package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naveenvasou/cerina-v0/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "cerina",
	Short: "Terminal client for the Cerina agent workflow",
	Long: `cerina watches the live activity of the Cerina multi-agent workflow
(planning, drafting, critique, synthesis) as an ordered timeline, tracks
draft and critique versions, and handles plan-approval pauses.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath,
		"config", filepath.Join(os.Getenv("HOME"), ".cerina", "config.json"), "config file path")
}

// loadConfig loads the config file, exiting on failure. Subcommands call
// it after flag parsing.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogging installs the default slog handler at the configured level.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
