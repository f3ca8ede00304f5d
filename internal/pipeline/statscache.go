package pipeline

import (
	"sync"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
)

// DefaultTTL is how long a cached snapshot stays fresh. It is shorter than
// the display layer's refresh cadence, so staleness is never visible for
// more than one tick.
const DefaultTTL = 3 * time.Second

type cacheEntry struct {
	snap      model.StatsSnapshot
	stampedAt time.Time
}

// StatsCache memoizes whole statistics snapshots per query range, with a
// short time-to-live re-validated against corpus freshness. Constructed once
// at process start and passed into the query path; there is no global state.
type StatsCache struct {
	mu      sync.Mutex
	loader  *Loader
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*cacheEntry
	corpus  *model.CorpusSnapshot // last full-corpus load
}

// NewStatsCache wraps a loader with snapshot memoization.
func NewStatsCache(loader *Loader, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StatsCache{
		loader:  loader,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*cacheEntry),
	}
}

// Query returns the statistics snapshot for the (since, until) range. Zero
// times mean unbounded. Within the TTL the cached snapshot is returned
// untouched; past it, corpus freshness is re-checked with a cheap stat pass,
// and a full reload plus re-aggregation only happens when a file actually
// changed. The lock spans the whole call, so at most one aggregation pass
// runs at a time; concurrent callers coalesce onto the fresh entry.
func (s *StatsCache) Query(since, until time.Time) model.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rangeKey(since, until)
	now := s.now()

	if e, ok := s.entries[key]; ok && now.Sub(e.stampedAt) < s.ttl {
		return e.snap
	}

	paths := s.loader.Discover()
	maxMtime := s.loader.MaxMtime(paths)

	if s.corpus != nil && !s.corpus.MaxMtime.Before(maxMtime) {
		// Nothing changed on disk. Re-stamp the existing entry and hand back
		// the same snapshot, or aggregate this range from the corpus we
		// already hold without re-reading any file.
		if e, ok := s.entries[key]; ok {
			e.stampedAt = now
			return e.snap
		}
		snap := Aggregate(FilterRange(s.corpus.Events, since, until), now)
		s.entries[key] = &cacheEntry{snap: snap, stampedAt: now}
		return snap
	}

	corpus := s.loader.LoadAll()
	s.corpus = &corpus

	snap := Aggregate(FilterRange(corpus.Events, since, until), now)
	s.entries[key] = &cacheEntry{snap: snap, stampedAt: now}
	return snap
}

// rangeKey builds the cache key for a query range. Absent bounds map to an
// explicit sentinel, not to "today".
func rangeKey(since, until time.Time) string {
	const unbounded = "unbounded"
	sk, uk := unbounded, unbounded
	if !since.IsZero() {
		sk = since.UTC().Format(time.RFC3339Nano)
	}
	if !until.IsZero() {
		uk = until.UTC().Format(time.RFC3339Nano)
	}
	return sk + "|" + uk
}
