package cmd

import (
	"fmt"

	"github.com/ItsJustMeChris/claude-cost/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	if config.Exists() {
		fmt.Printf("  Config file: %s\n", config.ConfigPath())
	} else {
		fmt.Printf("  No config file (defaults in effect). Run `claude-cost setup` to create one.\n")
	}
	fmt.Printf("  Log directory:   %s\n", config.DataDir(cfg))
	fmt.Printf("  Default range:   last %d days\n", cfg.General.DefaultDays)
	fmt.Printf("  Refresh:         every %ds\n", cfg.General.RefreshSeconds)
	if n := len(cfg.Pricing.Overrides); n > 0 {
		fmt.Printf("  Price overrides: %d model(s)\n", n)
	}
	fmt.Println()

	return nil
}
