package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ItsJustMeChris/claude-cost/internal/cli"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session list, most recent first",
	RunE:  runSessions,
}

var sessionsLimit int

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20, "Number of sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	snap := engine.Query(since, until)
	sessions := snap.Sessions
	if len(sessions) == 0 {
		fmt.Println("\n  No sessions in the selected time range.")
		return nil
	}

	if sessionsLimit > 0 && len(sessions) > sessionsLimit {
		sessions = sessions[:sessionsLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  %s (showing %d)", windowLabel(cfg), len(sessions))))
	fmt.Println()

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		lastStr := ""
		if !s.LastMessage.IsZero() {
			lastStr = s.LastMessage.Local().Format("Jan 02 15:04")
		}

		rows = append(rows, []string{
			lastStr,
			cli.Truncate(filepath.Base(s.Project), 18),
			s.LastModel,
			cli.FormatNumber(int64(s.Messages)),
			cli.FormatTokens(s.TotalTokens()),
			cli.FormatCost(s.Cost),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Last Activity", "Project", "Model", "Messages", "Tokens", "Cost"},
		Rows:    rows,
	}))

	return nil
}
