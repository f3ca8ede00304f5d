package pipeline

import (
	"sort"
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
	"github.com/ItsJustMeChris/claude-cost/internal/pricing"
)

const dayFormat = "2006-01-02"

// Aggregate computes the multi-dimensional statistics snapshot for an
// ordered (timestamp-ascending) event list. Pure and deterministic: day and
// hour grouping use now's location, and "today" for the hourly view is now's
// calendar date.
func Aggregate(events []model.UsageEvent, now time.Time) model.StatsSnapshot {
	loc := now.Location()
	today := now.In(loc).Format(dayFormat)

	snap := model.StatsSnapshot{
		Messages:    len(events),
		GeneratedAt: now,
	}

	hours := make([]model.HourlySummary, 24)
	for i := range hours {
		hours[i].Hour = i
	}

	models := make(map[string]*model.ModelTotals)
	sessions := make(map[string]*model.SessionSummary)
	days := make(map[string]*model.DailySummary)
	dayModels := make(map[string]map[string]*model.ModelTotals)

	for _, e := range events {
		snap.Totals.Add(e)

		name := pricing.DisplayName(e.Model)
		mt, ok := models[name]
		if !ok {
			mt = &model.ModelTotals{Model: name}
			models[name] = mt
		}
		mt.Messages++
		mt.Add(e)

		ss, ok := sessions[e.SessionID]
		if !ok {
			ss = &model.SessionSummary{
				SessionID:    e.SessionID,
				Project:      e.Project,
				FirstMessage: e.Timestamp,
			}
			sessions[e.SessionID] = ss
		}
		ss.Messages++
		ss.Add(e)
		// Events arrive in ascending timestamp order, so the last event seen
		// per session determines LastMessage and LastModel.
		ss.LastMessage = e.Timestamp
		ss.LastModel = name
		if ss.Project == "" {
			ss.Project = e.Project
		}

		local := e.Timestamp.In(loc)
		dayKey := local.Format(dayFormat)
		ds, ok := days[dayKey]
		if !ok {
			ds = &model.DailySummary{Date: dayKey}
			days[dayKey] = ds
			dayModels[dayKey] = make(map[string]*model.ModelTotals)
		}
		ds.Messages++
		ds.Add(e)
		dm, ok := dayModels[dayKey][name]
		if !ok {
			dm = &model.ModelTotals{Model: name}
			dayModels[dayKey][name] = dm
		}
		dm.Messages++
		dm.Add(e)

		if dayKey == today {
			h := &hours[local.Hour()]
			h.Messages++
			h.Tokens += e.TotalTokens()
			h.Cost += e.Cost
		}
	}

	snap.Models = sortModelTotals(models)

	snap.Sessions = make([]model.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		snap.Sessions = append(snap.Sessions, *s)
	}
	sort.Slice(snap.Sessions, func(i, j int) bool {
		return snap.Sessions[i].LastMessage.After(snap.Sessions[j].LastMessage)
	})

	snap.Days = make([]model.DailySummary, 0, len(days))
	for key, d := range days {
		d.Models = sortModelTotals(dayModels[key])
		snap.Days = append(snap.Days, *d)
	}
	sort.Slice(snap.Days, func(i, j int) bool {
		return snap.Days[i].Date > snap.Days[j].Date
	})

	snap.Hours = hours
	return snap
}

// sortModelTotals flattens a per-model map into a slice sorted by cost
// descending, with name as the tiebreaker so output is deterministic.
func sortModelTotals(m map[string]*model.ModelTotals) []model.ModelTotals {
	out := make([]model.ModelTotals, 0, len(m))
	for _, mt := range m {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].Model < out[j].Model
	})
	return out
}

// FilterRange returns the events inside [since, until]. Both bounds are
// inclusive and optional: a zero time means unbounded on that side.
func FilterRange(events []model.UsageEvent, since, until time.Time) []model.UsageEvent {
	if since.IsZero() && until.IsZero() {
		return events
	}
	var out []model.UsageEvent
	for _, e := range events {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && e.Timestamp.After(until) {
			continue
		}
		out = append(out, e)
	}
	return out
}
