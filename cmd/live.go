package cmd

import (
	"fmt"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Live dashboard that refreshes as you work",
	RunE:  runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)
}

func runLive(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all styling produces ANSI codes even when
	// stdout detection falls back to the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	interval := time.Duration(cfg.General.RefreshSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	app := tui.NewApp(engine, interval, since, until)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("live dashboard: %w", err)
	}

	return nil
}
