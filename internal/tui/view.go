package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ItsJustMeChris/claude-cost/internal/cli"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#3AA99F")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorGreen  = lipgloss.Color("#879A39")
	colorBlue   = lipgloss.Color("#4385BE")
	colorBorder = lipgloss.Color("#282726")
)

var (
	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	costStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	tokenStyle    = lipgloss.NewStyle().Foreground(colorBlue)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)
)

const maxSessionRows = 8

// View renders the whole dashboard.
func (a App) View() string {
	if !a.loaded {
		return fmt.Sprintf("\n\n  %s Loading usage data...\n", a.spin.View())
	}

	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(appTitleStyle.Render("claude-cost"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  refreshed %s  ·  every %s  ·  q quit · r refresh",
		a.lastRefresh.Format("15:04:05"), a.interval)))
	b.WriteString("\n\n")

	b.WriteString(a.renderCards())
	b.WriteString("\n")
	b.WriteString(a.renderModels())
	b.WriteString("\n")
	b.WriteString(a.renderToday())
	b.WriteString("\n")
	b.WriteString(a.renderSessions())

	return b.String()
}

func (a App) renderCards() string {
	t := a.snap.Totals

	cards := []string{
		cardStyle.Render(labelStyle.Render("Cost") + "\n" + costStyle.Render(cli.FormatCost(t.Cost))),
		cardStyle.Render(labelStyle.Render("Tokens") + "\n" + tokenStyle.Render(cli.FormatTokens(t.TotalTokens()))),
		cardStyle.Render(labelStyle.Render("Messages") + "\n" + textStyle.Render(cli.FormatNumber(int64(a.snap.Messages)))),
		cardStyle.Render(labelStyle.Render("Sessions") + "\n" + textStyle.Render(cli.FormatNumber(int64(len(a.snap.Sessions))))),
	}

	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func (a App) renderModels() string {
	if len(a.snap.Models) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(appTitleStyle.Render("Models"))
	b.WriteString("\n")

	maxCost := a.snap.Models[0].Cost
	for _, m := range a.snap.Models {
		bar := cli.RenderHorizontalBar(m.Cost, maxCost, 24)
		b.WriteString(fmt.Sprintf("  %-12s %8s  %s\n",
			cli.Truncate(m.Model, 12),
			costStyle.Render(cli.FormatCost(m.Cost)),
			tokenStyle.Render(bar)))
	}
	return b.String()
}

func (a App) renderToday() string {
	values := make([]float64, len(a.snap.Hours))
	var total int64
	for i, h := range a.snap.Hours {
		values[i] = float64(h.Tokens)
		total += h.Tokens
	}
	if total == 0 {
		return "  " + appTitleStyle.Render("Today") + labelStyle.Render("  no activity yet") + "\n"
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(appTitleStyle.Render("Today"))
	b.WriteString(labelStyle.Render("  00:00 "))
	b.WriteString(tokenStyle.Render(cli.RenderSparkline(values)))
	b.WriteString(labelStyle.Render(" 23:00  "))
	b.WriteString(textStyle.Render(cli.FormatTokens(total) + " tokens"))
	b.WriteString("\n")
	return b.String()
}

func (a App) renderSessions() string {
	if len(a.snap.Sessions) == 0 {
		return ""
	}

	sessions := a.snap.Sessions
	if len(sessions) > maxSessionRows {
		sessions = sessions[:maxSessionRows]
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(appTitleStyle.Render("Recent Sessions"))
	b.WriteString("\n")

	for _, s := range sessions {
		last := ""
		if !s.LastMessage.IsZero() {
			last = s.LastMessage.Local().Format("Jan 02 15:04")
		}
		b.WriteString(fmt.Sprintf("  %s  %-18s %-10s %6s %9s\n",
			labelStyle.Render(last),
			textStyle.Render(cli.Truncate(filepath.Base(s.Project), 18)),
			labelStyle.Render(s.LastModel),
			tokenStyle.Render(cli.FormatTokens(s.TotalTokens())),
			costStyle.Render(cli.FormatCost(s.Cost))))
	}
	return b.String()
}
