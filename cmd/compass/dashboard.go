package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/techtonix/compass/internal/browse"
	"github.com/techtonix/compass/internal/recommend"
	"github.com/techtonix/compass/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard.

Without a stored profile the quick-start form opens first. Logs are
written to compass.log in the data directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}
			logPath := filepath.Join(cfg.Storage.DataDir, "compass.log")
			logFile, err := tea.LogToFile(logPath, "compass")
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer logFile.Close()

			e, err := openEnv(logFile)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := e.requireLogin(); err != nil {
				return err
			}
			if noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			slog.Info("dashboard starting", "api", e.api.BaseURL())
			dash := browse.NewDashboard(e.profiles, recommend.NewClient(e.api))
			return tui.Run(cmd.Context(), tui.RunOpts{Dashboard: dash})
		},
	}
}
