package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// Color palette (Dracula-inspired).
var (
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")

	ColorStatusOpen       = lipgloss.Color("#50FA7B")
	ColorStatusInProgress = lipgloss.Color("#8BE9FD")
	ColorStatusResolved   = lipgloss.Color("#BD93F9")
	ColorStatusClosed     = lipgloss.Color("#6272A4")

	ColorPrioCritical = lipgloss.Color("#FF5555")
	ColorPrioHigh     = lipgloss.Color("#FFB86C")
	ColorPrioMedium   = lipgloss.Color("#F1FA8C")
	ColorPrioLow      = lipgloss.Color("#50FA7B")
)

var (
	// AppTitleStyle renders the top bar brand.
	AppTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// TabStyle / ActiveTabStyle render the navigation tabs.
	TabStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 2)
	ActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 2).Underline(true)

	// PanelStyle frames content panels.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight).
			Padding(0, 1)

	// ErrorBannerStyle renders blocking failure banners.
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ColorDanger).
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorDanger).
				Padding(0, 1)

	// SuccessNoteStyle renders transient confirmations.
	SuccessNoteStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// SuggestionStyle renders the classifier banner in the intake form.
	SuggestionStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	// HintStyle renders key hints.
	HintStyle = lipgloss.NewStyle().Faint(true).Foreground(ColorMuted)

	// LabelStyle renders form field labels.
	LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSubtext)

	// SelectedRowStyle highlights the cursor row in the ticket list.
	SelectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// MutedStyle renders secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// StatValueStyle / StatLabelStyle render dashboard stat cards.
	StatValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	StatLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// StatusColor maps a status to its accent color. Unrecognized statuses
// get the muted color rather than breaking rendering.
func StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusOpen:
		return ColorStatusOpen
	case model.StatusInProgress:
		return ColorStatusInProgress
	case model.StatusResolved:
		return ColorStatusResolved
	case model.StatusClosed:
		return ColorStatusClosed
	}
	return ColorMuted
}

// PriorityColor maps a priority to its accent color.
func PriorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityCritical:
		return ColorPrioCritical
	case model.PriorityHigh:
		return ColorPrioHigh
	case model.PriorityMedium:
		return ColorPrioMedium
	case model.PriorityLow:
		return ColorPrioLow
	}
	return ColorMuted
}

// RenderStatusBadge renders a colored status label.
func RenderStatusBadge(s model.Status) string {
	return lipgloss.NewStyle().Foreground(StatusColor(s)).Render(s.Label())
}

// RenderPriorityBadge renders a colored priority label.
func RenderPriorityBadge(p model.Priority) string {
	return lipgloss.NewStyle().Bold(true).Foreground(PriorityColor(p)).Render(p.Label())
}

// RenderCategoryBadge renders a category label.
func RenderCategoryBadge(c model.Category) string {
	return lipgloss.NewStyle().Foreground(ColorInfo).Render(c.Label())
}

// RenderBar renders a proportion as a fixed-width block bar.
func RenderBar(fraction float64, width int, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
