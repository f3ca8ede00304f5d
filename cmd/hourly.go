package cmd

import (
	"fmt"

	"github.com/ItsJustMeChris/claude-cost/internal/cli"

	"github.com/spf13/cobra"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Today's activity by hour",
	RunE:  runHourly,
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	snap := engine.Query(since, until)

	fmt.Println()
	fmt.Println(cli.RenderTitle("TODAY BY HOUR  (local time)"))
	fmt.Println()

	maxTokens := int64(0)
	for _, h := range snap.Hours {
		if h.Tokens > maxTokens {
			maxTokens = h.Tokens
		}
	}
	if maxTokens == 0 {
		fmt.Println("  No activity today.")
		return nil
	}

	peak := 0
	for _, h := range snap.Hours {
		bar := cli.RenderHorizontalBar(float64(h.Tokens), float64(maxTokens), 40)
		fmt.Printf("  %02d:00 │ %8s │ %s\n", h.Hour, cli.FormatTokens(h.Tokens), bar)
		if h.Tokens > snap.Hours[peak].Tokens {
			peak = h.Hour
		}
	}

	fmt.Printf("\n  Peak: %02d:00 (%s tokens, %s)\n\n",
		peak,
		cli.FormatTokens(snap.Hours[peak].Tokens),
		cli.FormatCost(snap.Hours[peak].Cost))

	return nil
}
