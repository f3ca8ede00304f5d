package model

import "time"

// Totals holds summed cost and token counts.
type Totals struct {
	Cost             float64
	InputTokens      int64
	OutputTokens     int64
	CacheWriteTokens int64
	CacheReadTokens  int64
}

// Add accumulates one event into the totals.
func (t *Totals) Add(e UsageEvent) {
	t.Cost += e.Cost
	t.InputTokens += e.InputTokens
	t.OutputTokens += e.OutputTokens
	t.CacheWriteTokens += e.CacheWriteTokens
	t.CacheReadTokens += e.CacheReadTokens
}

// TotalTokens returns the sum of all four token kinds.
func (t Totals) TotalTokens() int64 {
	return t.InputTokens + t.OutputTokens + t.CacheWriteTokens + t.CacheReadTokens
}

// ModelTotals holds aggregated usage for one model display name.
type ModelTotals struct {
	Model    string
	Messages int
	Totals
}

// SessionSummary holds aggregated usage for one session.
type SessionSummary struct {
	SessionID    string
	Project      string
	FirstMessage time.Time
	LastMessage  time.Time
	LastModel    string
	Messages     int
	Totals
}

// DailySummary holds aggregated usage for one local calendar day.
type DailySummary struct {
	Date     string // YYYY-MM-DD
	Messages int
	Models   []ModelTotals
	Totals
}

// HourlySummary holds usage for one hour of the current day.
type HourlySummary struct {
	Hour     int
	Messages int
	Tokens   int64
	Cost     float64
}

// StatsSnapshot is the aggregation result for one query. Immutable once
// produced; the stats cache hands out the same snapshot to repeat callers.
type StatsSnapshot struct {
	Messages    int
	Totals      Totals
	Models      []ModelTotals   // sorted by cost descending
	Sessions    []SessionSummary // sorted by last message descending
	Days        []DailySummary   // sorted by date descending
	Hours       []HourlySummary  // today only, hours 0-23 ascending
	GeneratedAt time.Time
}
