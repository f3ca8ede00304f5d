// Package pricing maps model identifiers to per-token prices.
package pricing

import (
	"sort"
	"strings"
)

// Price holds dollars per million tokens for each token kind.
type Price struct {
	Input      float64
	Output     float64
	CacheWrite float64
	CacheRead  float64
}

// Override replaces individual price fields for one model. Nil fields keep
// the existing (or default) value.
type Override struct {
	Input      *float64
	Output     *float64
	CacheWrite *float64
	CacheRead  *float64
}

// defaultPrice is used when no table entry or family rule matches.
// It equals the Sonnet 4.5 mid-tier pricing.
var defaultPrice = Price{Input: 3.00, Output: 15.00, CacheWrite: 3.75, CacheRead: 0.30}

// knownModels is the base price table, keyed by model identifier.
var knownModels = map[string]Price{
	"claude-opus-4-5":            {5.00, 25.00, 6.25, 0.50},
	"claude-opus-4-5-20251101":   {5.00, 25.00, 6.25, 0.50},
	"claude-opus-4-1":            {15.00, 75.00, 18.75, 1.50},
	"claude-opus-4-1-20250805":   {15.00, 75.00, 18.75, 1.50},
	"claude-opus-4":              {15.00, 75.00, 18.75, 1.50},
	"claude-opus-4-20250514":     {15.00, 75.00, 18.75, 1.50},
	"claude-sonnet-4-5":          {3.00, 15.00, 3.75, 0.30},
	"claude-sonnet-4-5-20250929": {3.00, 15.00, 3.75, 0.30},
	"claude-sonnet-4":            {3.00, 15.00, 3.75, 0.30},
	"claude-sonnet-4-20250514":   {3.00, 15.00, 3.75, 0.30},
	"claude-haiku-4-5":           {1.00, 5.00, 1.25, 0.10},
	"claude-haiku-4-5-20251001":  {1.00, 5.00, 1.25, 0.10},
	"claude-3-7-sonnet-20250219": {3.00, 15.00, 3.75, 0.30},
	"claude-3-5-sonnet-20241022": {3.00, 15.00, 3.75, 0.30},
	"claude-3-5-sonnet-20240620": {3.00, 15.00, 3.75, 0.30},
	"claude-3-5-haiku-20241022":  {0.80, 4.00, 1.00, 0.08},
	"claude-3-opus-20240229":     {15.00, 75.00, 18.75, 1.50},
	"claude-3-haiku-20240307":    {0.25, 1.25, 0.30, 0.03},
}

// familyRule maps a model-family token to a canonical table entry and a
// display name. Rules are checked in order, so version-specific tokens must
// come before their less specific counterparts (4-5 before 4, bare family
// names last).
type familyRule struct {
	token string
	model string
	name  string
}

var familyRules = []familyRule{
	{"opus-4-5", "claude-opus-4-5", "Opus 4.5"},
	{"opus-4.5", "claude-opus-4-5", "Opus 4.5"},
	{"opus-4-1", "claude-opus-4-1", "Opus 4.1"},
	{"opus-4.1", "claude-opus-4-1", "Opus 4.1"},
	{"opus-4", "claude-opus-4", "Opus 4"},
	{"sonnet-4-5", "claude-sonnet-4-5", "Sonnet 4.5"},
	{"sonnet-4.5", "claude-sonnet-4-5", "Sonnet 4.5"},
	{"sonnet-4", "claude-sonnet-4", "Sonnet 4"},
	{"haiku-4-5", "claude-haiku-4-5", "Haiku 4.5"},
	{"haiku-4.5", "claude-haiku-4-5", "Haiku 4.5"},
	{"3-7-sonnet", "claude-3-7-sonnet-20250219", "Sonnet 3.7"},
	{"3-5-sonnet", "claude-3-5-sonnet-20241022", "Sonnet 3.5"},
	{"3-5-haiku", "claude-3-5-haiku-20241022", "Haiku 3.5"},
	{"3-opus", "claude-3-opus-20240229", "Opus 3"},
	{"3-haiku", "claude-3-haiku-20240307", "Haiku 3"},
	{"opus", "claude-opus-4-5", "Opus"},
	{"sonnet", "claude-sonnet-4-5", "Sonnet"},
	{"haiku", "claude-haiku-4-5", "Haiku"},
}

// Table resolves model identifiers to prices. Lookup is total: every input
// resolves to some price.
type Table struct {
	models map[string]Price
	keys   []string // longest first, so the substring pass prefers specific keys
}

// NewTable builds a price table from the known-model defaults plus optional
// per-model overrides from the config file.
func NewTable(overrides map[string]Override) *Table {
	models := make(map[string]Price, len(knownModels))
	for k, v := range knownModels {
		models[k] = v
	}
	for name, o := range overrides {
		p, ok := models[name]
		if !ok {
			p = defaultPrice
		}
		if o.Input != nil {
			p.Input = *o.Input
		}
		if o.Output != nil {
			p.Output = *o.Output
		}
		if o.CacheWrite != nil {
			p.CacheWrite = *o.CacheWrite
		}
		if o.CacheRead != nil {
			p.CacheRead = *o.CacheRead
		}
		models[name] = p
	}

	// Longest keys first so versioned identifiers win over their prefixes
	// ("claude-opus-4-5" before "claude-opus-4"); name as tiebreaker keeps
	// the pass deterministic.
	keys := make([]string, 0, len(models))
	for k := range models {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &Table{models: models, keys: keys}
}

// Default returns a table without overrides.
func Default() *Table {
	return NewTable(nil)
}

// Resolve maps a model identifier to its price. It never fails: exact match,
// then case-insensitive substring match in either direction (best-effort),
// then the ordered family rules, then the default price.
func (t *Table) Resolve(modelID string) Price {
	if p, ok := t.models[modelID]; ok {
		return p
	}

	lower := strings.ToLower(modelID)
	for _, k := range t.keys {
		lk := strings.ToLower(k)
		if strings.Contains(lower, lk) || strings.Contains(lk, lower) {
			return t.models[k]
		}
	}

	for _, r := range familyRules {
		if strings.Contains(lower, r.token) {
			if p, ok := t.models[r.model]; ok {
				return p
			}
		}
	}

	return defaultPrice
}

// Cost computes the dollar cost of one invocation.
func (t *Table) Cost(modelID string, input, output, cacheWrite, cacheRead int64) float64 {
	p := t.Resolve(modelID)
	cost := float64(input) * p.Input / 1_000_000
	cost += float64(output) * p.Output / 1_000_000
	cost += float64(cacheWrite) * p.CacheWrite / 1_000_000
	cost += float64(cacheRead) * p.CacheRead / 1_000_000
	return cost
}

// DisplayName derives a human-readable model name using the same family rule
// ordering as price resolution. Unrecognized identifiers are returned as-is.
func DisplayName(modelID string) string {
	lower := strings.ToLower(modelID)
	for _, r := range familyRules {
		if strings.Contains(lower, r.token) {
			return r.name
		}
	}
	return modelID
}
