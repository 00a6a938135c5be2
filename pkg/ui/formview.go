package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tickdesk-io/tickdesk/pkg/model"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
)

// Form focus order.
const (
	focusTitle = iota
	focusDescription
	focusCategory
	focusPriority
	focusSubmit
	focusCount
)

// FormModel renders the intake form. Draft state lives in the intake
// controller; the inputs here mirror it.
type FormModel struct {
	intake *triage.Intake

	title textinput.Model
	desc  textarea.Model
	spin  spinner.Model

	focus       int
	catIdx      int
	prioIdx     int
	classifying bool
	suggestion  *model.Suggestion
	errMsg      string
	okMsg       string
	submitting  bool
}

// NewFormModel creates the intake form bound to a controller.
func NewFormModel(intake *triage.Intake) FormModel {
	title := textinput.New()
	title.Placeholder = "Brief summary of the issue"
	title.CharLimit = model.MaxTitleLen
	title.Focus()

	desc := textarea.New()
	desc.Placeholder = "Describe the issue in detail…"
	desc.SetHeight(5)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorInfo)

	m := FormModel{
		intake: intake,
		title:  title,
		desc:   desc,
		spin:   spin,
	}
	m.syncSelections()
	return m
}

// syncSelections aligns the category/priority cursors with the draft.
func (m *FormModel) syncSelections() {
	draft := m.intake.Draft()
	for i, c := range model.Categories() {
		if c == draft.Category {
			m.catIdx = i
		}
	}
	for i, p := range model.Priorities() {
		if p == draft.Priority {
			m.prioIdx = i
		}
	}
}

func (m FormModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SuggestMsg:
		m.classifying = msg.State == triage.SuggestClassifying
		m.suggestion = msg.Suggestion
		// A settled suggestion became the draft default; mirror it.
		m.syncSelections()
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = triage.SubmitErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.okMsg = fmt.Sprintf("Ticket %s created.", msg.ticket.ID)
		m.suggestion = nil
		m.title.SetValue("")
		m.desc.SetValue("")
		m.focus = focusTitle
		m.title.Focus()
		m.desc.Blur()
		m.syncSelections()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m FormModel) updateKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.okMsg = ""
		delta := 1
		if msg.String() == "shift+tab" {
			delta = focusCount - 1
		}
		m.focus = (m.focus + delta) % focusCount
		m.title.Blur()
		m.desc.Blur()
		switch m.focus {
		case focusTitle:
			m.title.Focus()
			return m, textinput.Blink
		case focusDescription:
			m.desc.Focus()
			return m, textarea.Blink
		}
		return m, nil
	}

	switch m.focus {
	case focusTitle:
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		m.intake.SetTitle(m.title.Value())
		return m, cmd

	case focusDescription:
		var cmd tea.Cmd
		m.desc, cmd = m.desc.Update(msg)
		m.intake.SetDescription(m.desc.Value())
		return m, cmd

	case focusCategory:
		if cycled, idx := cycleKey(msg, m.catIdx, len(model.Categories())); cycled {
			m.catIdx = idx
			m.intake.SetCategory(model.Categories()[idx])
		}
		return m, nil

	case focusPriority:
		if cycled, idx := cycleKey(msg, m.prioIdx, len(model.Priorities())); cycled {
			m.prioIdx = idx
			m.intake.SetPriority(model.Priorities()[idx])
		}
		return m, nil

	case focusSubmit:
		if msg.String() == "enter" && !m.submitting {
			m.submitting = true
			m.errMsg = ""
			m.okMsg = ""
			return m, m.submitCmd()
		}
		return m, nil
	}
	return m, nil
}

// cycleKey moves a selection index with left/right or h/l.
func cycleKey(msg tea.KeyMsg, idx, n int) (bool, int) {
	switch msg.String() {
	case "left", "h":
		return true, (idx + n - 1) % n
	case "right", "l":
		return true, (idx + 1) % n
	}
	return false, idx
}

func (m FormModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		ticket, err := m.intake.Submit(context.Background())
		return submitDoneMsg{ticket: ticket, err: err}
	}
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(LabelStyle.Render("New Ticket") + "\n\n")

	if m.errMsg != "" {
		b.WriteString(ErrorBannerStyle.Render(m.errMsg) + "\n\n")
	}
	if m.okMsg != "" {
		b.WriteString(SuccessNoteStyle.Render(m.okMsg) + "\n\n")
	}

	b.WriteString(m.fieldLabel(focusTitle, "Title *"))
	b.WriteString(fmt.Sprintf("  %s\n", HintStyle.Render(fmt.Sprintf("%d/%d", m.intake.Draft().TitleLen(), model.MaxTitleLen))))
	b.WriteString(m.title.View() + "\n\n")

	label := m.fieldLabel(focusDescription, "Description *")
	if m.classifying {
		label += "  " + SuggestionStyle.Render(m.spin.View()+"AI classifying…")
	}
	b.WriteString(label + "\n")
	b.WriteString(m.desc.View() + "\n\n")

	if m.suggestion != nil {
		b.WriteString(SuggestionStyle.Render(fmt.Sprintf(
			"AI suggested: %s / %s priority. You can override below.",
			m.suggestion.Category.Label(), m.suggestion.Priority.Label())) + "\n\n")
	}

	b.WriteString(m.fieldLabel(focusCategory, "Category") + "  " + m.selectView(focusCategory) + "\n")
	b.WriteString(m.fieldLabel(focusPriority, "Priority") + "  " + m.selectView(focusPriority) + "\n\n")

	submit := "[ Submit Ticket ]"
	if m.submitting {
		submit = "[ Submitting… ]"
	}
	if m.focus == focusSubmit {
		submit = SelectedRowStyle.Render(submit)
	} else {
		submit = MutedStyle.Render(submit)
	}
	b.WriteString(submit + "\n\n")
	b.WriteString(HintStyle.Render("[tab] next field  [←/→] change selection  [enter] submit"))
	return b.String()
}

func (m FormModel) fieldLabel(focus int, text string) string {
	if m.focus == focus {
		return SelectedRowStyle.Render(text)
	}
	return LabelStyle.Render(text)
}

func (m FormModel) selectView(focus int) string {
	var parts []string
	switch focus {
	case focusCategory:
		for i, c := range model.Categories() {
			label := c.Label()
			if i == m.catIdx {
				label = SelectedRowStyle.Render("(" + label + ")")
			} else {
				label = MutedStyle.Render(label)
			}
			parts = append(parts, label)
		}
	case focusPriority:
		for i, p := range model.Priorities() {
			label := p.Label()
			if i == m.prioIdx {
				label = SelectedRowStyle.Render("(" + label + ")")
			} else {
				label = MutedStyle.Render(label)
			}
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, " ")
}
