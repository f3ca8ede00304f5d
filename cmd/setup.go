package cmd

import (
	"fmt"
	"strconv"

	"github.com/ItsJustMeChris/claude-cost/internal/config"
	"github.com/ItsJustMeChris/claude-cost/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg)
	}
	found := len(source.Discover(dataDir))

	days := cfg.General.DefaultDays
	refresh := cfg.General.RefreshSeconds

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to claude-cost!").
				Description(fmt.Sprintf("Found %d log files in %s", found, dataDir)),
			huh.NewInput().
				Title("Log directory").
				Description("Where Claude Code writes its JSONL session logs.").
				Value(&dataDir),
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
				).
				Value(&days),
			huh.NewSelect[int]().
				Title("Live refresh interval").
				Options(
					huh.NewOption("3 seconds", 3),
					huh.NewOption("5 seconds", 5),
					huh.NewOption("10 seconds", 10),
				).
				Value(&refresh),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.General.DataDir = dataDir
	cfg.General.DefaultDays = days
	cfg.General.RefreshSeconds = refresh

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Defaults: last " + strconv.Itoa(days) + " days, refresh every " + strconv.Itoa(refresh) + "s.")
	fmt.Println("  Run `claude-cost setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
