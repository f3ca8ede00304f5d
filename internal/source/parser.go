// Package source discovers and parses Claude Code JSONL session files.
package source

import (
	"encoding/json"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
	"github.com/ItsJustMeChris/claude-cost/internal/pricing"
)

// Reject explains why a line was not converted into a usage event.
type Reject int

// Reject causes, in the order they are checked.
const (
	RejectNone Reject = iota
	RejectMalformed
	RejectWrongType
	RejectMissingFields
	RejectEmptyUsage
)

func (r Reject) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectMalformed:
		return "malformed"
	case RejectWrongType:
		return "wrong-type"
	case RejectMissingFields:
		return "missing-fields"
	case RejectEmptyUsage:
		return "empty-usage"
	}
	return "unknown"
}

// ParseLine converts one raw log line into a usage event, or rejects it.
// Only "assistant" records with a model identifier and at least one nonzero
// token count are accepted. Pure function over one line; a rejected line
// never affects the rest of the file.
func ParseLine(line []byte, prices *pricing.Table) (model.UsageEvent, Reject) {
	var entry rawEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return model.UsageEvent{}, RejectMalformed
	}

	if entry.Type != "assistant" {
		return model.UsageEvent{}, RejectWrongType
	}

	if entry.Message == nil || entry.Message.Usage == nil || entry.Message.Model == "" {
		return model.UsageEvent{}, RejectMissingFields
	}

	u := entry.Message.Usage
	if u.InputTokens == 0 && u.OutputTokens == 0 &&
		u.CacheCreationInputTokens == 0 && u.CacheReadInputTokens == 0 {
		return model.UsageEvent{}, RejectEmptyUsage
	}

	// A bad or absent timestamp is not a rejection; the event keeps a zero time.
	ts, _ := time.Parse(time.RFC3339Nano, entry.Timestamp)

	sessionID := entry.SessionID
	if sessionID == "" {
		sessionID = "unknown"
	}

	messageID := entry.Message.ID
	if messageID == "" {
		messageID = entry.UUID
	}
	if messageID == "" {
		messageID = "unknown"
	}

	ev := model.UsageEvent{
		Timestamp:        ts,
		Model:            entry.Message.Model,
		InputTokens:      u.InputTokens,
		OutputTokens:     u.OutputTokens,
		CacheWriteTokens: u.CacheCreationInputTokens,
		CacheReadTokens:  u.CacheReadInputTokens,
		SessionID:        sessionID,
		Project:          entry.Cwd,
		MessageID:        messageID,
	}
	ev.Cost = prices.Cost(ev.Model, ev.InputTokens, ev.OutputTokens, ev.CacheWriteTokens, ev.CacheReadTokens)

	return ev, RejectNone
}
