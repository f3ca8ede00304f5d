// Package model defines domain types for claude-cost events and statistics.
package model

import "time"

// UsageEvent represents one accounted model invocation parsed from a log line.
type UsageEvent struct {
	Timestamp        time.Time
	Model            string
	InputTokens      int64
	OutputTokens     int64
	CacheWriteTokens int64
	CacheReadTokens  int64
	Cost             float64
	SessionID        string
	Project          string
	MessageID        string
}

// TotalTokens returns the sum of all four token kinds.
func (e UsageEvent) TotalTokens() int64 {
	return e.InputTokens + e.OutputTokens + e.CacheWriteTokens + e.CacheReadTokens
}

// DedupKey identifies the logical message this event accounts for.
// The same message can be recorded more than once during incremental writes.
func (e UsageEvent) DedupKey() string {
	return e.SessionID + "\x00" + e.MessageID
}

// CorpusSnapshot is the deduplicated, timestamp-ascending event list across
// all discovered log files, tagged with the maximum modification time
// observed during the scan for freshness comparisons.
type CorpusSnapshot struct {
	Events    []UsageEvent
	MaxMtime  time.Time
	FileCount int
}
