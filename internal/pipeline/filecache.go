// Package pipeline orchestrates log ingestion, caching, and aggregation.
package pipeline

import (
	"bufio"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
	"github.com/ItsJustMeChris/claude-cost/internal/pricing"
	"github.com/ItsJustMeChris/claude-cost/internal/source"
)

// cachedFile memoizes the parse result for one file at one modification time.
type cachedFile struct {
	mtime  time.Time
	events []model.UsageEvent
}

// FileCache memoizes per-file parse results keyed by modification time so
// unchanged files are never re-read. Entries are retained until the file's
// mtime changes or it becomes unreadable; there is no size-based eviction.
type FileCache struct {
	mu      sync.Mutex
	entries map[string]cachedFile
	prices  *pricing.Table
	parses  atomic.Int64
}

// NewFileCache returns an empty cache that prices events with the given table.
func NewFileCache(prices *pricing.Table) *FileCache {
	return &FileCache{
		entries: make(map[string]cachedFile),
		prices:  prices,
	}
}

// Load returns the ordered usage events extracted from path. When the file's
// modification time matches the cached entry, the cached events are returned
// without touching file contents. A file that cannot be stat'ed or read has
// its entry evicted and yields no events; this is never an error.
//
// The lock is held across the whole load so two callers can never interleave
// a cache entry from two different file versions.
func (c *FileCache) Load(path string) []model.UsageEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		delete(c.entries, path)
		return nil
	}

	if e, ok := c.entries[path]; ok && e.mtime.Equal(info.ModTime()) {
		return e.events
	}

	events, err := c.parseFile(path)
	if err != nil {
		delete(c.entries, path)
		return nil
	}

	c.entries[path] = cachedFile{mtime: info.ModTime(), events: events}
	return events
}

// ParseCount reports how many full file parses have happened. Exists so
// callers (and tests) can verify that unchanged files are not re-parsed.
func (c *FileCache) ParseCount() int64 {
	return c.parses.Load()
}

// maxLineBytes caps how much of a single line is buffered. Lines past the cap
// are discarded like any other malformed record; the rest of the file still
// parses.
const maxLineBytes = 2 * 1024 * 1024

func (c *FileCache) parseFile(path string) ([]model.UsageEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c.parses.Add(1)

	var (
		events []model.UsageEvent
		line   []byte
		skip   bool
	)
	r := bufio.NewReaderSize(f, 256*1024)
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if skip {
			// Draining the remainder of an oversized line.
			if !isPrefix {
				skip = false
			}
			continue
		}

		line = append(line, chunk...)
		if isPrefix {
			if len(line) > maxLineBytes {
				skip = true
				line = line[:0]
			}
			continue
		}

		if len(line) > 0 {
			if ev, reject := source.ParseLine(line, c.prices); reject == source.RejectNone {
				events = append(events, ev)
			}
		}
		line = line[:0]
	}

	return events, nil
}
