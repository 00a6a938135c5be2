package ui

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// PreviewWidth is the collapsed description preview length.
const PreviewWidth = 120

// PreviewDescription truncates a description for the collapsed card,
// width-aware so wide runes don't overflow the row.
func PreviewDescription(s string) string {
	return runewidth.Truncate(s, PreviewWidth, "…")
}

// FormatTimeRel renders a created-at timestamp as a relative age.
func FormatTimeRel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FormatTimeAbs renders a created-at timestamp for the expanded card.
func FormatTimeAbs(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}
