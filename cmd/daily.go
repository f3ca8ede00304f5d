package cmd

import (
	"fmt"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/cli"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily usage table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	snap := engine.Query(since, until)
	if len(snap.Days) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY USAGE  %s", windowLabel(cfg))))
	fmt.Println()

	rows := make([][]string, 0, len(snap.Days))
	for _, d := range snap.Days {
		weekday := ""
		if t, err := time.ParseInLocation("2006-01-02", d.Date, time.Local); err == nil {
			weekday = cli.FormatDayOfWeek(int(t.Weekday()))
		}

		topModel := ""
		if len(d.Models) > 0 {
			topModel = d.Models[0].Model
		}

		rows = append(rows, []string{
			d.Date,
			weekday,
			cli.FormatNumber(int64(d.Messages)),
			cli.FormatTokens(d.TotalTokens()),
			topModel,
			cli.FormatCost(d.Cost),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Messages", "Tokens", "Top Model", "Cost"},
		Rows:    rows,
	}))

	return nil
}
