package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/jwulff/strata/internal/motion"
	"github.com/jwulff/strata/internal/ui"
)

const barHeight = 3

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Status bar
	sections = append(sections, m.renderStatusBar())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Timeline: event marks, bar, indicator
	sections = append(sections, m.renderTimeline())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Event panel and recent notifications
	sections = append(sections, m.renderEventPanel())

	// Error bar
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}

	// Footer
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("STRATA")

	var period string
	if p, ok := m.state.Period(m.state.CurrentPeriod()); ok {
		period = ui.DimStyle.Render(" — ") + ui.PeriodNameStyle.Render(p.Name)
	}

	clock := ui.TimestampStyle.Render("  t=" + formatTime(m.state.CurrentTime()))
	return title + period + clock
}

func (m Model) renderStatusBar() string {
	var dot string
	switch m.ctl.Direction() {
	case motion.TowardEnd:
		dot = ui.MovingStyle.Render("▶ PLAY")
	case motion.TowardStart:
		dot = ui.MovingStyle.Render("◀ BACK")
	default:
		dot = ui.IdleStyle.Render("■ IDLE")
	}

	var pct string
	if m.state.Attached() {
		pct = ui.DimStyle.Render(fmt.Sprintf("  %3.0f%%", 100*clampFraction(m.state.CurrentFraction())))
	}
	status := ui.StatusStyle.Render("  " + m.statusText)
	return dot + pct + status
}

func (m Model) renderTimeline() string {
	margin := m.barMargin
	width := m.width - 2*margin
	if width < 1 {
		margin = 0
		width = m.width
	}
	pad := strings.Repeat(" ", margin)

	var lines []string
	lines = append(lines, pad+ui.RenderEventMarks(m.state.Events(), m.state.Fraction, m.state.LastEvent(), width))
	for _, row := range strings.Split(ui.RenderBar(m.state.Periods(), m.state.Fraction, width, barHeight), "\n") {
		lines = append(lines, pad+row)
	}
	lines = append(lines, pad+ui.RenderIndicator(m.state.CurrentFraction(), width))
	return strings.Join(lines, "\n")
}

func (m Model) renderEventPanel() string {
	var lines []string

	lines = append(lines, ui.PanelTitleStyle.Render("EVENT"))
	if e, ok := m.state.Event(m.state.LastEvent()); ok {
		lines = append(lines, ui.TimestampStyle.Render(formatTime(e.Time)+" ")+ui.EventTitleStyle.Render(e.Title))
		if e.Description != "" {
			lines = append(lines, lipgloss.NewStyle().Width(m.width).Render(e.Description))
		}
	} else {
		lines = append(lines, ui.DimStyle.Render("No event reached yet"))
	}

	// Whatever rows remain below the fixed sections go to the recent list.
	used := 1 + 1 + 1 + (barHeight + 2) + 1 + len(lines) + 1 + 1
	if m.errorMessage != "" {
		used++
	}
	rows := m.height - used - 1
	if rows <= 0 || len(m.hist.entries) == 0 {
		return strings.Join(lines, "\n")
	}

	lines = append(lines, ui.PanelTitleStyle.Render("RECENT"))
	entries := m.hist.entries
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		line := ui.TimestampStyle.Render(fmt.Sprintf("%8s ", formatTime(e.Time))) +
			ui.DimStyle.Render(fmt.Sprintf("%-7s ", e.Kind)) +
			truncate.StringWithTail(e.Text, uint(max(m.width-17, 1)), "…")
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render(" ERROR ") + ui.ErrorTextStyle.Render(" "+m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string
	for _, b := range m.keys.footerBindings() {
		h := b.Help()
		parts = append(parts, ui.FooterKeyStyle.Render(h.Key)+ui.FooterDescStyle.Render(" "+h.Desc))
	}
	return strings.Join(parts, "  ")
}

func formatTime(t float64) string {
	return fmt.Sprintf("%.1f", t)
}

func clampFraction(f float64) float64 {
	return min(max(f, 0), 1)
}
