package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/pricing"
)

func newTestCache(t *testing.T, root string) (*StatsCache, *FileCache, *time.Time) {
	t.Helper()
	fc := NewFileCache(pricing.Default())
	sc := NewStatsCache(NewLoader(root, fc), 3*time.Second)
	current := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	sc.now = func() time.Time { return current }
	return sc, fc, &current
}

func TestStatsCache_TTLHitReturnsSameSnapshot(t *testing.T) {
	root := t.TempDir()
	mtime := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	writeLog(t, root, "a/chat.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-02T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)

	sc, fc, current := newTestCache(t, root)

	first := sc.Query(time.Time{}, time.Time{})
	if got := fc.ParseCount(); got != 1 {
		t.Fatalf("ParseCount after first query = %d, want 1", got)
	}

	*current = current.Add(time.Second)
	second := sc.Query(time.Time{}, time.Time{})
	if got := fc.ParseCount(); got != 1 {
		t.Errorf("ParseCount after TTL hit = %d, want 1", got)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("TTL hit returned a different snapshot:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestStatsCache_RestampWhenCorpusUnchanged(t *testing.T) {
	root := t.TempDir()
	mtime := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	writeLog(t, root, "a/chat.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-02T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)

	sc, fc, current := newTestCache(t, root)

	first := sc.Query(time.Time{}, time.Time{})

	// Past the TTL with no file change: the stat pass sees an unchanged
	// corpus, re-stamps the entry, and no file is re-read.
	*current = current.Add(10 * time.Second)
	second := sc.Query(time.Time{}, time.Time{})
	if got := fc.ParseCount(); got != 1 {
		t.Errorf("ParseCount after restamp = %d, want 1", got)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("restamp returned a different snapshot")
	}

	// The restamped entry is fresh again.
	*current = current.Add(time.Second)
	sc.Query(time.Time{}, time.Time{})
	if got := fc.ParseCount(); got != 1 {
		t.Errorf("ParseCount after post-restamp hit = %d, want 1", got)
	}
}

func TestStatsCache_ReloadsWhenFileChanges(t *testing.T) {
	root := t.TempDir()
	mtime := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	writeLog(t, root, "a/chat.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-02T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)

	sc, fc, current := newTestCache(t, root)

	first := sc.Query(time.Time{}, time.Time{})
	if first.Messages != 1 {
		t.Fatalf("first snapshot Messages = %d, want 1", first.Messages)
	}

	writeLog(t, root, "a/chat.jsonl", mtime.Add(time.Minute),
		usageLine("s1", "m1", "2025-06-02T10:00:00Z", "claude-sonnet-4-5", 100, 50),
		usageLine("s1", "m2", "2025-06-02T10:05:00Z", "claude-sonnet-4-5", 200, 80),
	)

	*current = current.Add(10 * time.Second)
	second := sc.Query(time.Time{}, time.Time{})
	if got := fc.ParseCount(); got != 2 {
		t.Errorf("ParseCount after file change = %d, want 2", got)
	}
	if second.Messages != 2 {
		t.Errorf("second snapshot Messages = %d, want 2", second.Messages)
	}
	if second.Totals.TotalTokens() <= first.Totals.TotalTokens() {
		t.Errorf("totals did not grow after new events landed")
	}
}

func TestStatsCache_NewRangeAggregatesFromHeldCorpus(t *testing.T) {
	root := t.TempDir()
	mtime := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	writeLog(t, root, "a/chat.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
		usageLine("s1", "m2", "2025-06-02T10:00:00Z", "claude-sonnet-4-5", 200, 80),
	)

	sc, fc, _ := newTestCache(t, root)

	all := sc.Query(time.Time{}, time.Time{})
	if all.Messages != 2 {
		t.Fatalf("unbounded query Messages = %d, want 2", all.Messages)
	}

	// A different range is a cache miss, but the corpus on disk is unchanged,
	// so it is served from the events already in memory.
	since := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	ranged := sc.Query(since, time.Time{})
	if got := fc.ParseCount(); got != 1 {
		t.Errorf("ParseCount after second range = %d, want 1", got)
	}
	if ranged.Messages != 1 {
		t.Errorf("ranged query Messages = %d, want 1", ranged.Messages)
	}
}

func TestRangeKey(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	keys := map[string]struct{}{
		rangeKey(time.Time{}, time.Time{}):           {},
		rangeKey(base, time.Time{}):                  {},
		rangeKey(time.Time{}, base):                  {},
		rangeKey(base, base.AddDate(0, 0, 7)):        {},
		rangeKey(base.AddDate(0, 0, 1), time.Time{}): {},
	}
	if len(keys) != 5 {
		t.Errorf("range keys collide: got %d distinct keys, want 5", len(keys))
	}

	// Same instant in different zones keys identically.
	est := base.In(time.FixedZone("EST", -5*3600))
	if rangeKey(base, time.Time{}) != rangeKey(est, time.Time{}) {
		t.Errorf("equal instants in different zones produced different keys")
	}
}
