package pipeline

import (
	"os"
	"sort"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
	"github.com/ItsJustMeChris/claude-cost/internal/source"
)

// Loader produces the corpus-wide deduplicated event stream from all log
// files under a root directory, loading each file through the file cache.
type Loader struct {
	root  string
	files *FileCache
}

// NewLoader returns a loader rooted at root.
func NewLoader(root string, files *FileCache) *Loader {
	return &Loader{root: root, files: files}
}

// Discover returns all log file paths under the root.
func (l *Loader) Discover() []string {
	return source.Discover(l.root)
}

// MaxMtime returns the greatest modification time across paths. Files that
// vanish mid-scan are skipped.
func (l *Loader) MaxMtime(paths []string) time.Time {
	var max time.Time
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.ModTime().After(max) {
			max = info.ModTime()
		}
	}
	return max
}

// LoadAll discovers every log file, loads each through the file cache, and
// returns the deduplicated, timestamp-ascending event stream tagged with the
// maximum observed modification time. No query-specific filtering happens
// here; the snapshot is the corpus-wide source of truth.
func (l *Loader) LoadAll() model.CorpusSnapshot {
	paths := l.Discover()
	maxMtime := l.MaxMtime(paths)

	var events []model.UsageEvent
	for _, p := range paths {
		events = append(events, l.files.Load(p)...)
	}

	return model.CorpusSnapshot{
		Events:    Dedup(events),
		MaxMtime:  maxMtime,
		FileCount: len(paths),
	}
}

// Dedup removes duplicate recordings of the same logical message, identified
// by (sessionID, messageID). When duplicates exist, the occurrence with the
// greatest timestamp wins: sort descending, keep first seen per key, then
// re-sort ascending for output. Sorts the input slice in place.
func Dedup(events []model.UsageEvent) []model.UsageEvent {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	seen := make(map[string]struct{}, len(events))
	result := make([]model.UsageEvent, 0, len(events))
	for _, e := range events {
		key := e.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, e)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}
