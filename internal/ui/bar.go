// Package ui holds the lipgloss styles and bar geometry for the timeline TUI.
package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"

	"github.com/jwulff/strata/internal/timeline"
)

// Segment is a period's horizontal extent on the bar, in columns.
type Segment struct {
	Start int
	Width int
}

// Column maps a bar fraction to a column in [0, width).
func Column(fraction float64, width int) int {
	if width <= 0 || math.IsNaN(fraction) {
		return 0
	}
	x := int(math.Round(fraction * float64(width)))
	return max(0, min(width-1, x))
}

// Segments lays periods out on a bar width columns wide. Both edges are
// rounded from the fraction so adjacent segments share a boundary column.
func Segments(periods []timeline.Period, fraction func(float64) float64, width int) []Segment {
	segs := make([]Segment, len(periods))
	for i, p := range periods {
		start := clampCol(fraction(p.Begin), width)
		end := clampCol(fraction(p.End), width)
		segs[i] = Segment{Start: start, Width: max(0, end-start)}
	}
	return segs
}

func clampCol(fraction float64, width int) int {
	x := int(math.Round(fraction * float64(width)))
	return max(0, min(width, x))
}

// LabelColor picks black or white text for legibility on c.
func LabelColor(c timeline.RGB) lipgloss.Color {
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, _, _ := col.Lab()
	if l > 0.6 {
		return ColorBlack
	}
	return ColorWhite
}

// RenderBar draws the period segments as height rows of colored blocks with
// each name centered on the middle row. With no periods the bar is a red
// placeholder.
func RenderBar(periods []timeline.Period, fraction func(float64) float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(periods) == 0 {
		row := PlaceholderBarStyle.Render(strings.Repeat(" ", width))
		return strings.TrimSuffix(strings.Repeat(row+"\n", height), "\n")
	}

	segs := Segments(periods, fraction, width)
	mid := height / 2
	rows := make([]string, height)
	for r := 0; r < height; r++ {
		var b strings.Builder
		used := 0
		for i, p := range periods {
			seg := segs[i]
			if seg.Width == 0 {
				continue
			}
			if seg.Start > used {
				b.WriteString(strings.Repeat(" ", seg.Start-used))
			}
			style := lipgloss.NewStyle().Background(lipgloss.Color(p.Color.Hex()))
			text := strings.Repeat(" ", seg.Width)
			if r == mid {
				text = centerLabel(p.Name, seg.Width)
				style = style.Bold(true).Foreground(LabelColor(p.Color))
			}
			b.WriteString(style.Render(text))
			used = seg.Start + seg.Width
		}
		if used < width {
			b.WriteString(strings.Repeat(" ", width-used))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}

// centerLabel fits name into width columns, truncating with an ellipsis.
func centerLabel(name string, width int) string {
	if width < 3 {
		return strings.Repeat(" ", width)
	}
	label := truncate.StringWithTail(name, uint(width), "…")
	pad := width - lipgloss.Width(label)
	left := pad / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left)
}

// RenderIndicator draws a marker under the bar at fraction.
func RenderIndicator(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	col := Column(fraction, width)
	return strings.Repeat(" ", col) + IndicatorStyle.Render("▲") + strings.Repeat(" ", width-col-1)
}

// RenderEventMarks draws a tick for each event above the bar; events up to
// and including reached are highlighted.
func RenderEventMarks(events []timeline.HistoricalEvent, fraction func(float64) float64, reached, width int) string {
	if width <= 0 {
		return ""
	}
	marks := make([]int, width) // 0 none, 1 pending, 2 reached
	for i, e := range events {
		col := Column(fraction(e.Time), width)
		state := 1
		if i <= reached {
			state = 2
		}
		marks[col] = max(marks[col], state)
	}

	var b strings.Builder
	for _, m := range marks {
		switch m {
		case 1:
			b.WriteString(EventMarkStyle.Render("╷"))
		case 2:
			b.WriteString(EventReachedMarkStyle.Render("╷"))
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
