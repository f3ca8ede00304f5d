package pipeline

import (
	"testing"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
	"github.com/ItsJustMeChris/claude-cost/internal/pricing"
)

func newTestLoader(t *testing.T, root string) *Loader {
	t.Helper()
	return NewLoader(root, NewFileCache(pricing.Default()))
}

func TestLoadAll_OrdersAndTags(t *testing.T) {
	root := t.TempDir()
	early := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	writeLog(t, root, "a/one.jsonl", early,
		usageLine("s1", "m2", "2025-06-01T11:00:00Z", "claude-sonnet-4-5", 10, 5),
	)
	writeLog(t, root, "b/two.jsonl", late,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 10, 5),
	)

	corpus := newTestLoader(t, root).LoadAll()

	if corpus.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", corpus.FileCount)
	}
	if !corpus.MaxMtime.Equal(late) {
		t.Errorf("MaxMtime = %v, want %v", corpus.MaxMtime, late)
	}
	if len(corpus.Events) != 2 {
		t.Fatalf("Events = %d, want 2", len(corpus.Events))
	}
	if !corpus.Events[0].Timestamp.Before(corpus.Events[1].Timestamp) {
		t.Error("events not in ascending timestamp order")
	}
}

func TestLoadAll_EmptyRoot(t *testing.T) {
	corpus := newTestLoader(t, t.TempDir()).LoadAll()
	if len(corpus.Events) != 0 || corpus.FileCount != 0 {
		t.Errorf("empty root corpus = %+v, want empty", corpus)
	}
}

func TestDedup_KeepsLatestDuplicate(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	events := []model.UsageEvent{
		{SessionID: "s1", MessageID: "m1", Timestamp: t1, InputTokens: 100},
		{SessionID: "s1", MessageID: "m1", Timestamp: t2, InputTokens: 200},
		{SessionID: "s1", MessageID: "m2", Timestamp: t1, InputTokens: 50},
	}

	out := Dedup(events)
	if len(out) != 2 {
		t.Fatalf("Dedup kept %d events, want 2", len(out))
	}

	for _, e := range out {
		if e.MessageID == "m1" {
			if !e.Timestamp.Equal(t2) || e.InputTokens != 200 {
				t.Errorf("duplicate resolution kept %+v, want the later occurrence", e)
			}
		}
	}
	if out[0].Timestamp.After(out[1].Timestamp) {
		t.Error("Dedup output not ascending")
	}
}

func TestDedup_SameMessageIDAcrossSessions(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	events := []model.UsageEvent{
		{SessionID: "s1", MessageID: "m1", Timestamp: ts},
		{SessionID: "s2", MessageID: "m1", Timestamp: ts},
	}
	if out := Dedup(events); len(out) != 2 {
		t.Errorf("Dedup collapsed events from different sessions: %d, want 2", len(out))
	}
}

func TestLoadAll_DedupAcrossFiles(t *testing.T) {
	// The same message recorded in two files (e.g. a rewrite during an
	// incremental write) must survive only once, with the later timestamp.
	root := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	writeLog(t, root, "a.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)
	writeLog(t, root, "b.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:05Z", "claude-sonnet-4-5", 120, 60),
	)

	corpus := newTestLoader(t, root).LoadAll()
	if len(corpus.Events) != 1 {
		t.Fatalf("corpus has %d events, want 1 after dedup", len(corpus.Events))
	}
	if corpus.Events[0].InputTokens != 120 {
		t.Errorf("dedup kept input=%d, want the later occurrence (120)", corpus.Events[0].InputTokens)
	}
}
