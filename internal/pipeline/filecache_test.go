package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/pricing"
)

func TestFileCache_MemoizesByMtime(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	path := writeLog(t, dir, "s.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)

	cache := NewFileCache(pricing.Default())

	first := cache.Load(path)
	if len(first) != 1 {
		t.Fatalf("Load returned %d events, want 1", len(first))
	}
	if cache.ParseCount() != 1 {
		t.Fatalf("ParseCount = %d, want 1", cache.ParseCount())
	}

	// Same mtime: served from cache, no re-parse.
	second := cache.Load(path)
	if len(second) != 1 {
		t.Fatalf("cached Load returned %d events, want 1", len(second))
	}
	if cache.ParseCount() != 1 {
		t.Errorf("ParseCount after cached load = %d, want 1", cache.ParseCount())
	}
}

func TestFileCache_ReparsesOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	path := writeLog(t, dir, "s.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)

	cache := NewFileCache(pricing.Default())
	cache.Load(path)

	// Append a line and bump the mtime.
	writeLog(t, dir, "s.jsonl", mtime.Add(time.Hour),
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
		usageLine("s1", "m2", "2025-06-01T10:05:00Z", "claude-sonnet-4-5", 200, 80),
	)

	events := cache.Load(path)
	if len(events) != 2 {
		t.Errorf("Load after change returned %d events, want 2", len(events))
	}
	if cache.ParseCount() != 2 {
		t.Errorf("ParseCount = %d, want 2", cache.ParseCount())
	}
}

func TestFileCache_MissingFileEvicts(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	path := writeLog(t, dir, "s.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
	)

	cache := NewFileCache(pricing.Default())
	if got := cache.Load(path); len(got) != 1 {
		t.Fatalf("initial Load returned %d events", len(got))
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if got := cache.Load(path); len(got) != 0 {
		t.Errorf("Load of removed file returned %d events, want 0", len(got))
	}

	// Recreating the file must load the fresh contents, not the old entry.
	writeLog(t, dir, "s.jsonl", mtime,
		usageLine("s2", "m9", "2025-06-02T10:00:00Z", "claude-sonnet-4-5", 1, 1),
	)
	got := cache.Load(path)
	if len(got) != 1 || got[0].SessionID != "s2" {
		t.Errorf("Load after recreate = %+v, want one s2 event", got)
	}
}

func TestFileCache_SkipsRejectedLines(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	path := writeLog(t, dir, "s.jsonl", mtime,
		`not json at all`,
		`{"type":"user","timestamp":"2025-06-01T09:59:00Z"}`,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
		``,
		usageLine("s1", "m2", "2025-06-01T10:01:00Z", "claude-sonnet-4-5", 10, 5),
	)

	cache := NewFileCache(pricing.Default())
	events := cache.Load(path)
	if len(events) != 2 {
		t.Errorf("Load returned %d events, want 2 (malformed/user/empty lines skipped)", len(events))
	}
}

func TestFileCache_OversizedLineDoesNotAbortFile(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	path := writeLog(t, dir, "s.jsonl", mtime,
		usageLine("s1", "m1", "2025-06-01T10:00:00Z", "claude-sonnet-4-5", 100, 50),
		strings.Repeat("x", maxLineBytes+512*1024),
		usageLine("s1", "m2", "2025-06-01T10:01:00Z", "claude-sonnet-4-5", 10, 5),
	)

	cache := NewFileCache(pricing.Default())
	events := cache.Load(path)
	if len(events) != 2 {
		t.Fatalf("Load returned %d events, want 2 (oversized line skipped)", len(events))
	}
	if events[0].MessageID != "m1" || events[1].MessageID != "m2" {
		t.Errorf("events = %s, %s; want m1, m2", events[0].MessageID, events[1].MessageID)
	}

	// The entry is cached like any other successful load.
	cache.Load(path)
	if cache.ParseCount() != 1 {
		t.Errorf("ParseCount = %d, want 1 (entry retained despite oversized line)", cache.ParseCount())
	}
}

func TestFileCache_UnreadableDirectoryPath(t *testing.T) {
	cache := NewFileCache(pricing.Default())
	if got := cache.Load(filepath.Join(t.TempDir(), "nope.jsonl")); got != nil {
		t.Errorf("Load of missing path = %v, want nil", got)
	}
}
