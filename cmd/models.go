package cmd

import (
	"fmt"

	"github.com/ItsJustMeChris/claude-cost/internal/cli"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Per-model cost and token breakdown",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	snap := engine.Query(since, until)
	if len(snap.Models) == 0 {
		fmt.Println("\n  No usage in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MODELS  %s", windowLabel(cfg))))
	fmt.Println()

	rows := make([][]string, 0, len(snap.Models)+2)
	for _, m := range snap.Models {
		share := ""
		if snap.Totals.Cost > 0 {
			share = fmt.Sprintf("%.1f%%", m.Cost/snap.Totals.Cost*100)
		}
		rows = append(rows, []string{
			m.Model,
			cli.FormatNumber(int64(m.Messages)),
			cli.FormatTokens(m.InputTokens),
			cli.FormatTokens(m.OutputTokens),
			cli.FormatTokens(m.CacheWriteTokens + m.CacheReadTokens),
			cli.FormatCost(m.Cost),
			share,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatNumber(int64(snap.Messages)),
		cli.FormatTokens(snap.Totals.InputTokens),
		cli.FormatTokens(snap.Totals.OutputTokens),
		cli.FormatTokens(snap.Totals.CacheWriteTokens + snap.Totals.CacheReadTokens),
		cli.FormatCost(snap.Totals.Cost),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Messages", "Input", "Output", "Cache", "Cost", "Share"},
		Rows:    rows,
	}))

	return nil
}
