package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Machine-readable usage report",
	RunE:  runJSON,
}

func init() {
	rootCmd.AddCommand(jsonCmd)
}

// jsonReport is the flat document emitted by the json command.
type jsonReport struct {
	TotalCost   float64           `json:"total_cost"`
	TotalTokens int64             `json:"total_tokens"`
	Sessions    int               `json:"sessions"`
	Messages    int               `json:"messages"`
	Models      []jsonModelReport `json:"models"`
}

type jsonModelReport struct {
	Model            string  `json:"model"`
	Messages         int     `json:"messages"`
	InputTokens      int64   `json:"input_tokens"`
	OutputTokens     int64   `json:"output_tokens"`
	CacheWriteTokens int64   `json:"cache_write_tokens"`
	CacheReadTokens  int64   `json:"cache_read_tokens"`
	Cost             float64 `json:"cost"`
}

func runJSON(_ *cobra.Command, _ []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}
	since, until, err := queryRange(cfg)
	if err != nil {
		return err
	}

	snap := engine.Query(since, until)

	report := jsonReport{
		TotalCost:   snap.Totals.Cost,
		TotalTokens: snap.Totals.TotalTokens(),
		Sessions:    len(snap.Sessions),
		Messages:    snap.Messages,
		Models:      make([]jsonModelReport, 0, len(snap.Models)),
	}
	for _, m := range snap.Models {
		report.Models = append(report.Models, jsonModelReport{
			Model:            m.Model,
			Messages:         m.Messages,
			InputTokens:      m.InputTokens,
			OutputTokens:     m.OutputTokens,
			CacheWriteTokens: m.CacheWriteTokens,
			CacheReadTokens:  m.CacheReadTokens,
			Cost:             m.Cost,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
