package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tickdesk-io/tickdesk/pkg/model"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
)

// Filter options; index 0 is the "all" selection, which is omitted from
// the query entirely.
var (
	categoryOptions = append([]model.Category{""}, model.Categories()...)
	priorityOptions = append([]model.Priority{""}, model.Priorities()...)
	statusOptions   = append([]model.Status{""}, model.Statuses()...)
)

// ListModel renders the fetched ticket list with its filter bar and the
// per-ticket status workflow. All fetch logic lives in the browser; this
// model only reflects its updates.
type ListModel struct {
	browser *triage.Browser

	search textinput.Model
	spin   spinner.Model

	tickets  []model.Ticket
	cursor   int
	expanded bool
	loading  bool
	errMsg   string
	note     string

	catIdx  int
	prioIdx int
	statIdx int

	searching bool
	width     int
	height    int
	markdown  *glamour.TermRenderer
}

// NewListModel creates the list view bound to a browser.
func NewListModel(browser *triage.Browser) ListModel {
	search := textinput.New()
	search.Placeholder = "Search title or description…"
	search.Prompt = "/ "
	search.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return ListModel{
		browser: browser,
		search:  search,
		spin:    spin,
		loading: true,
	}
}

// Selected returns the ticket under the cursor, if any.
func (m ListModel) Selected() (model.Ticket, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tickets) {
		return model.Ticket{}, false
	}
	return m.tickets[m.cursor], true
}

func (m ListModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.markdown = nil // rebuilt at the new width on next expand
		return m, nil

	case BrowseMsg:
		switch msg.Phase {
		case triage.BrowseLoading:
			m.loading = true
			m.errMsg = ""
		case triage.BrowseLoaded:
			m.loading = false
			m.errMsg = ""
			m.tickets = msg.Tickets
			if m.cursor >= len(m.tickets) {
				m.cursor = len(m.tickets) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
		case triage.BrowseFailed:
			m.loading = false
			m.errMsg = msg.Err
		}
		return m, nil

	case yankedMsg:
		m.note = fmt.Sprintf("Copied ticket %s to clipboard", msg.id)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.note = ""
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m ListModel) updateSearch(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.browser.SetSearch(m.search.Value())
	return m, cmd
}

func (m ListModel) updateBrowse(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.expanded = false
		}
	case "down", "j":
		if m.cursor < len(m.tickets)-1 {
			m.cursor++
			m.expanded = false
		}
	case "enter", " ", "space":
		if len(m.tickets) > 0 {
			m.expanded = !m.expanded
		}
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "c":
		m.catIdx = (m.catIdx + 1) % len(categoryOptions)
		m.browser.SetCategory(categoryOptions[m.catIdx])
	case "p":
		m.prioIdx = (m.prioIdx + 1) % len(priorityOptions)
		m.browser.SetPriority(priorityOptions[m.prioIdx])
	case "f":
		m.statIdx = (m.statIdx + 1) % len(statusOptions)
		m.browser.SetStatus(statusOptions[m.statIdx])
	case "r":
		m.browser.Fetch()
	case "y":
		if ticket, ok := m.Selected(); ok {
			return m, yankCmd(ticket.ID)
		}
	case "1", "2", "3", "4":
		if ticket, ok := m.Selected(); ok && m.expanded {
			statuses := model.Statuses()
			idx := int(msg.String()[0] - '1')
			if idx < len(statuses) {
				m.browser.SetTicketStatus(ticket.ID, statuses[idx])
			}
		}
	case "esc":
		m.expanded = false
	}
	return m, nil
}

func yankCmd(id string) tea.Cmd {
	return func() tea.Msg {
		// Clipboard failure is cosmetic; the note simply doesn't appear.
		if err := clipboard.WriteAll(id); err != nil {
			return nil
		}
		return yankedMsg{id: id}
	}
}

func (m ListModel) View() string {
	var b strings.Builder

	count := fmt.Sprintf("%d tickets", len(m.tickets))
	b.WriteString(LabelStyle.Render("Tickets") + "  " + MutedStyle.Render(count))
	if m.loading {
		b.WriteString("  " + m.spin.View())
	}
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ErrorBannerStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.note != "" {
		b.WriteString(SuccessNoteStyle.Render(m.note))
		b.WriteString("\n")
	}

	if len(m.tickets) == 0 && !m.loading {
		b.WriteString("\n" + MutedStyle.Render("No tickets found. Try adjusting your filters.") + "\n")
	} else {
		for i, ticket := range m.tickets {
			b.WriteString(m.renderRow(i, ticket))
		}
	}

	b.WriteString("\n" + HintStyle.Render(
		"[/] search  [c/p/f] filters  [enter] expand  [1-4] set status  [y] copy id  [r] reload"))
	return b.String()
}

func (m ListModel) filterBar() string {
	parts := []string{m.search.View()}

	cat := "All Categories"
	if categoryOptions[m.catIdx] != "" {
		cat = categoryOptions[m.catIdx].Label()
	}
	prio := "All Priorities"
	if priorityOptions[m.prioIdx] != "" {
		prio = priorityOptions[m.prioIdx].Label()
	}
	status := "All Statuses"
	if statusOptions[m.statIdx] != "" {
		status = statusOptions[m.statIdx].Label()
	}
	parts = append(parts,
		MutedStyle.Render("category:")+cat,
		MutedStyle.Render("priority:")+prio,
		MutedStyle.Render("status:")+status,
	)
	return strings.Join(parts, "  ")
}

func (m ListModel) renderRow(i int, ticket model.Ticket) string {
	var b strings.Builder

	title := ticket.Title
	rowStyle := lipgloss.NewStyle()
	marker := "  "
	if i == m.cursor {
		rowStyle = SelectedRowStyle
		marker = "> "
	}

	row := fmt.Sprintf("%s%-10s %-13s %s",
		marker,
		RenderPriorityBadge(ticket.Priority),
		RenderStatusBadge(ticket.Status),
		rowStyle.Render(title),
	)
	meta := fmt.Sprintf("  %s · %s", RenderCategoryBadge(ticket.Category), FormatTimeRel(ticket.CreatedAt))
	b.WriteString(row + meta + "\n")

	if i == m.cursor && m.expanded {
		b.WriteString(m.renderExpanded(ticket))
	} else if i == m.cursor {
		b.WriteString("    " + MutedStyle.Render(PreviewDescription(ticket.Description)) + "\n")
	}
	return b.String()
}

func (m *ListModel) renderer() *glamour.TermRenderer {
	if m.markdown == nil {
		width := m.width - 8
		if width < 20 {
			width = 72
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			m.markdown = r
		}
	}
	return m.markdown
}

func (m ListModel) renderExpanded(ticket model.Ticket) string {
	var b strings.Builder

	body := ticket.Description
	if r := m.renderer(); r != nil {
		if rendered, err := r.Render(ticket.Description); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	b.WriteString(body + "\n")
	b.WriteString("    " + MutedStyle.Render("Created "+FormatTimeAbs(ticket.CreatedAt)) + "\n")

	var opts []string
	for i, s := range model.Statuses() {
		label := fmt.Sprintf("[%d] %s", i+1, s.Label())
		if s == ticket.Status {
			label = SelectedRowStyle.Render(label)
		}
		opts = append(opts, label)
	}
	b.WriteString("    Update status: " + strings.Join(opts, "  ") + "\n")
	return b.String()
}
