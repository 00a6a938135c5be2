// Package export renders the stats dashboard as a standalone SVG, for
// sharing outside the terminal.
package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/tickdesk-io/tickdesk/pkg/model"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
)

const (
	canvasWidth = 640
	rowHeight   = 28
	barMaxWidth = 320
	marginX     = 24
)

var priorityColors = map[string]string{
	"critical": "#FF5555",
	"high":     "#FFB86C",
	"medium":   "#F1FA8C",
	"low":      "#50FA7B",
}

// WriteStats renders the snapshot as an SVG dashboard. Bars follow the
// dashboard's breakdown rule: proportional to each entry's share, sorted
// by count descending.
func WriteStats(w io.Writer, snap model.StatsSnapshot) {
	prio := triage.Breakdown(snap.PriorityBreakdown)
	cat := triage.Breakdown(snap.CategoryBreakdown)

	height := 120 + (len(prio)+len(cat)+2)*rowHeight + 40
	canvas := svg.New(w)
	canvas.Start(canvasWidth, height)
	canvas.Rect(0, 0, canvasWidth, height, "fill:#282A36")

	canvas.Text(marginX, 40, "Ticket Statistics", "font-family:sans-serif;font-size:20px;font-weight:bold;fill:#F8F8F2")

	rate := "—"
	if r, ok := triage.ResolutionRate(snap); ok {
		rate = fmt.Sprintf("%d%%", r)
	}
	summary := fmt.Sprintf("Total: %d   Open: %d   Avg/day: %.1f   Resolution rate: %s",
		snap.TotalTickets, snap.OpenTickets, snap.AvgTicketsPerDay, rate)
	canvas.Text(marginX, 70, summary, "font-family:sans-serif;font-size:13px;fill:#BFBFBF")

	y := 110
	y = writeBreakdown(canvas, y, "By Priority", prio, func(key string) string {
		if c, ok := priorityColors[key]; ok {
			return c
		}
		return "#6272A4"
	})
	y += rowHeight
	writeBreakdown(canvas, y, "By Category", cat, func(string) string { return "#8BE9FD" })

	canvas.End()
}

func writeBreakdown(canvas *svg.SVG, y int, title string, entries []triage.BreakdownEntry, color func(string) string) int {
	canvas.Text(marginX, y, title, "font-family:sans-serif;font-size:15px;font-weight:bold;fill:#BD93F9")
	y += 10

	for _, e := range entries {
		barWidth := int(e.Fraction * float64(barMaxWidth))
		canvas.Text(marginX, y+18, e.Key, "font-family:sans-serif;font-size:12px;fill:#F8F8F2")
		canvas.Rect(marginX+120, y+6, barMaxWidth, 14, "fill:#44475A")
		if barWidth > 0 {
			canvas.Rect(marginX+120, y+6, barWidth, 14, "fill:"+color(e.Key))
		}
		canvas.Text(marginX+120+barMaxWidth+10, y+18, fmt.Sprintf("%d", e.Count),
			"font-family:sans-serif;font-size:12px;fill:#BFBFBF")
		y += rowHeight
	}
	return y
}
