package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tickdesk-io/tickdesk/pkg/model"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
)

// barWidth is the dashboard's breakdown bar width in cells.
const barWidth = 24

// DashModel renders the stats dashboard. All aggregation happens on the
// server; this view only derives display ratios from the snapshot.
type DashModel struct {
	stats *triage.StatsView

	snap    *model.StatsSnapshot
	loading bool
	errMsg  string
}

// NewDashModel creates the dashboard bound to a stats controller.
func NewDashModel(stats *triage.StatsView) DashModel {
	return DashModel{stats: stats, loading: true}
}

func (m DashModel) Update(msg tea.Msg) (DashModel, tea.Cmd) {
	if msg, ok := msg.(StatsMsg); ok {
		switch msg.Phase {
		case triage.StatsLoading:
			m.loading = true
			m.errMsg = ""
		case triage.StatsLoaded:
			m.loading = false
			m.errMsg = ""
			snap := msg.Snapshot
			m.snap = &snap
		case triage.StatsFailed:
			m.loading = false
			m.errMsg = msg.Err
		}
	}
	return m, nil
}

func (m DashModel) View() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Dashboard") + "  " + MutedStyle.Render("Real-time ticket statistics") + "\n\n")

	if m.errMsg != "" {
		b.WriteString(ErrorBannerStyle.Render(m.errMsg) + "\n")
		return b.String()
	}
	if m.snap == nil {
		b.WriteString(MutedStyle.Render("Loading statistics…") + "\n")
		return b.String()
	}

	snap := *m.snap
	rate := "—"
	if r, ok := triage.ResolutionRate(snap); ok {
		rate = fmt.Sprintf("%d%%", r)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard(fmt.Sprintf("%d", snap.TotalTickets), "Total Tickets"),
		statCard(fmt.Sprintf("%d", snap.OpenTickets), "Open Tickets"),
		statCard(fmt.Sprintf("%.1f", snap.AvgTicketsPerDay), "Avg / Day"),
		statCard(rate, "Resolution Rate"),
	)
	b.WriteString(cards + "\n\n")

	b.WriteString(renderBreakdown("By Priority", triage.Breakdown(snap.PriorityBreakdown), priorityBarColor))
	b.WriteString("\n")
	b.WriteString(renderBreakdown("By Category", triage.Breakdown(snap.CategoryBreakdown), func(string) lipgloss.Color { return ColorInfo }))
	return b.String()
}

func statCard(value, label string) string {
	content := StatValueStyle.Render(value) + "\n" + StatLabelStyle.Render(label)
	return PanelStyle.Render(lipgloss.NewStyle().Width(16).Align(lipgloss.Center).Render(content))
}

func priorityBarColor(key string) lipgloss.Color {
	return PriorityColor(model.Priority(key))
}

// renderBreakdown renders one chart: bars sorted by count descending.
func renderBreakdown(title string, entries []triage.BreakdownEntry, color func(string) lipgloss.Color) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(title) + "\n")
	if len(entries) == 0 {
		b.WriteString(MutedStyle.Render("No data yet") + "\n")
		return b.String()
	}
	for _, e := range entries {
		label := strings.ReplaceAll(e.Key, "_", " ")
		b.WriteString(fmt.Sprintf("  %-12s %s %d\n",
			label, RenderBar(e.Fraction, barWidth, color(e.Key)), e.Count))
	}
	return b.String()
}
