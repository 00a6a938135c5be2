// Package ui is the terminal shell around the triage core: a tabbed
// bubbletea application with the ticket list, the intake form, and the
// stats dashboard. It holds no business state of its own.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tickdesk-io/tickdesk/pkg/debounce"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
)

// Tab identifies a top-level view.
type Tab int

const (
	TabTickets Tab = iota
	TabNew
	TabDashboard
)

var tabNames = []string{"Tickets", "New Ticket", "Dashboard"}

// App is the root model.
type App struct {
	browser *triage.Browser
	intake  *triage.Intake
	stats   *triage.StatsView

	list ListModel
	form FormModel
	dash DashModel

	tab    Tab
	width  int
	height int
}

// NewApp wires the controllers together and builds the shell. Controller
// callbacks are routed through relay into the program loop.
func NewApp(store triage.Store, relay *Relay) App {
	events := triage.NewDispatcher()

	browser := triage.NewBrowser(store, events, debounce.SearchDuration, func(u triage.BrowseUpdate) {
		relay.Send(BrowseMsg(u))
	})
	intake := triage.NewIntake(store, events, debounce.ClassifyDuration, func(u triage.SuggestUpdate) {
		relay.Send(SuggestMsg(u))
	})
	stats := triage.NewStatsView(store, events, func(u triage.StatsUpdate) {
		relay.Send(StatsMsg(u))
	})

	return App{
		browser: browser,
		intake:  intake,
		stats:   stats,
		list:    NewListModel(browser),
		form:    NewFormModel(intake),
		dash:    NewDashModel(stats),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.list.Init(),
		a.form.Init(),
		func() tea.Msg {
			a.browser.Fetch()
			a.stats.Load()
			return nil
		},
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			// Quit only when no text input is capturing keystrokes.
			if !a.typing() {
				return a, tea.Quit
			}
		case "ctrl+t":
			a.tab = (a.tab + 1) % Tab(len(tabNames))
			return a, nil
		}
		return a.routeToTab(msg)

	case BrowseMsg, yankedMsg:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case SuggestMsg, submitDoneMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd

	case StatsMsg:
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd
	}

	// Spinner ticks and other component messages go to the active tab.
	return a.routeToTab(msg)
}

// typing reports whether the active tab has a focused text field.
func (a App) typing() bool {
	switch a.tab {
	case TabTickets:
		return a.list.searching
	case TabNew:
		return a.form.focus == focusTitle || a.form.focus == focusDescription
	}
	return false
}

func (a App) routeToTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.tab {
	case TabTickets:
		a.list, cmd = a.list.Update(msg)
	case TabNew:
		a.form, cmd = a.form.Update(msg)
	case TabDashboard:
		a.dash, cmd = a.dash.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var b strings.Builder

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == a.tab {
			tabs[i] = ActiveTabStyle.Render(name)
		} else {
			tabs[i] = TabStyle.Render(name)
		}
	}
	header := AppTitleStyle.Render("tickdesk") + "  " + lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	b.WriteString(header + "\n\n")

	switch a.tab {
	case TabTickets:
		b.WriteString(a.list.View())
	case TabNew:
		b.WriteString(a.form.View())
	case TabDashboard:
		b.WriteString(a.dash.View())
	}

	b.WriteString("\n" + HintStyle.Render("[ctrl+t] switch tab  [q] quit"))
	return b.String()
}
