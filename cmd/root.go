package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/config"
	"github.com/ItsJustMeChris/claude-cost/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagDays    int
	flagSince   string
	flagUntil   string
)

var rootCmd = &cobra.Command{
	Use:   "claude-cost",
	Short: "Claude Code usage and cost statistics",
	Long:  "Aggregate your Claude Code session logs into cost and token statistics.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Claude log directory (default ~/.claude/projects)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagSince, "since", "", "Start date, inclusive (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagUntil, "until", "", "End date, inclusive (YYYY-MM-DD)")
}

// newEngine wires the query path: config -> pricing table -> file cache ->
// corpus loader -> stats cache. Built once per command invocation.
func newEngine() (*pipeline.StatsCache, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg)
	}

	files := pipeline.NewFileCache(config.PriceTable(cfg))
	loader := pipeline.NewLoader(dataDir, files)
	return pipeline.NewStatsCache(loader, pipeline.DefaultTTL), cfg, nil
}

// queryRange resolves the --since/--until/--days flags into query bounds.
// Zero times mean unbounded.
func queryRange(cfg config.Config) (since, until time.Time, err error) {
	if flagSince != "" {
		since, err = time.ParseInLocation("2006-01-02", flagSince, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --since: %w", err)
		}
	}
	if flagUntil != "" {
		until, err = time.ParseInLocation("2006-01-02", flagUntil, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --until: %w", err)
		}
		// End-of-day so the bound stays inclusive for that date.
		until = until.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if since.IsZero() && flagSince == "" {
		days := flagDays
		if days == 0 {
			days = cfg.General.DefaultDays
		}
		if days > 0 {
			since = time.Now().AddDate(0, 0, -days)
		}
	}

	return since, until, nil
}

// windowLabel describes the active query range for table titles.
func windowLabel(cfg config.Config) string {
	if flagSince != "" || flagUntil != "" {
		return "Custom range"
	}
	days := flagDays
	if days == 0 {
		days = cfg.General.DefaultDays
	}
	return fmt.Sprintf("Last %dd", days)
}
