package cmd

import (
	"fmt"

	"github.com/ItsJustMeChris/claude-cost/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Usage summary with totals and per-model costs",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	snap := engine.Query(since, until)
	if snap.Messages == 0 {
		fmt.Println("\n  No Claude Code usage found.")
		fmt.Println("  Use Claude Code first, then come back!")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CLAUDE USAGE  %s", windowLabel(cfg))))
	fmt.Println()

	t := snap.Totals
	rows := [][]string{
		{"Messages", cli.FormatNumber(int64(snap.Messages))},
		{"Sessions", cli.FormatNumber(int64(len(snap.Sessions)))},
		{"---"},
		{"Input Tokens", cli.FormatTokens(t.InputTokens)},
		{"Output Tokens", cli.FormatTokens(t.OutputTokens)},
		{"Cache Write", cli.FormatTokens(t.CacheWriteTokens)},
		{"Cache Read", cli.FormatTokens(t.CacheReadTokens)},
		{"Total Tokens", cli.FormatTokens(t.TotalTokens())},
		{"---"},
		{"Cost (est)", cli.FormatCost(t.Cost)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(snap.Models) > 0 {
		modelRows := make([][]string, 0, len(snap.Models))
		for _, m := range snap.Models {
			modelRows = append(modelRows, []string{
				m.Model,
				cli.FormatNumber(int64(m.Messages)),
				cli.FormatTokens(m.TotalTokens()),
				cli.FormatCost(m.Cost),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Model",
			Headers: []string{"Model", "Messages", "Tokens", "Cost"},
			Rows:    modelRows,
		}))
	}

	return nil
}
