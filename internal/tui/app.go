// Package tui provides the live Bubble Tea dashboard for claude-cost.
package tui

import (
	"time"

	"github.com/ItsJustMeChris/claude-cost/internal/model"
	"github.com/ItsJustMeChris/claude-cost/internal/pipeline"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// snapshotMsg is sent when a stats query completes.
type snapshotMsg model.StatsSnapshot

// tickMsg fires on the refresh cadence.
type tickMsg time.Time

// App is the root Bubble Tea model. Every tick re-queries the stats cache;
// when the underlying files haven't changed, that query is a cheap cache hit.
type App struct {
	engine   *pipeline.StatsCache
	interval time.Duration
	since    time.Time
	until    time.Time

	snap        model.StatsSnapshot
	loaded      bool
	lastRefresh time.Time

	width  int
	height int

	spin spinner.Model
}

// NewApp builds the dashboard around a ready stats cache.
func NewApp(engine *pipeline.StatsCache, interval time.Duration, since, until time.Time) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return App{
		engine:   engine,
		interval: interval,
		since:    since,
		until:    until,
		spin:     sp,
	}
}

// Init starts the spinner, the first query, and the refresh ticker.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.query(), a.tick())
}

func (a App) query() tea.Cmd {
	engine, since, until := a.engine, a.since, a.until
	return func() tea.Msg {
		return snapshotMsg(engine.Query(since, until))
	}
}

func (a App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "r":
			return a, a.query()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tickMsg:
		return a, tea.Batch(a.query(), a.tick())

	case snapshotMsg:
		a.snap = model.StatsSnapshot(msg)
		a.loaded = true
		a.lastRefresh = time.Now()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a, nil
}
