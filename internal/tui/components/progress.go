package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// ProgressBar shows how much of a capacity is used, e.g. requested loan
// principal against the maximum supportable loan.
type ProgressBar struct {
	Current     float64
	Total       float64
	Width       int
	Label       string
	ShowPercent bool
}

// NewProgressBar creates a progress bar for current out of total.
func NewProgressBar(current, total float64) *ProgressBar {
	return &ProgressBar{
		Current:     current,
		Total:       total,
		Width:       40,
		ShowPercent: true,
	}
}

// WithLabel sets the label rendered above the bar.
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width.
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the utilization as a percentage. Values above 100 mean
// the capacity is exceeded.
func (p *ProgressBar) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return p.Current / p.Total * 100
}

// Exceeded reports whether current is over total.
func (p *ProgressBar) Exceeded() bool {
	return p.Current > p.Total
}

// Render returns the styled bar. A bar over capacity fills completely and
// switches to the danger color.
func (p *ProgressBar) Render() string {
	var b strings.Builder

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		b.WriteString(labelStyle.Render(p.Label))
		b.WriteString("\n")
	}

	percentage := p.Percentage()
	filled := int(float64(p.Width) * percentage / 100)
	if filled > p.Width {
		filled = p.Width
	}
	if filled < 0 {
		filled = 0
	}

	fillStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	if p.Exceeded() {
		fillStyle = lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	}
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	b.WriteString("[")
	if filled > 0 {
		b.WriteString(fillStyle.Render(strings.Repeat("█", filled)))
	}
	if empty := p.Width - filled; empty > 0 {
		b.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	b.WriteString("]")

	if p.ShowPercent {
		percentStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorPrimary).
			Bold(true)
		if p.Exceeded() {
			percentStyle = percentStyle.Foreground(tuistyles.ColorDanger)
		}
		b.WriteString(" ")
		b.WriteString(percentStyle.Render(fmt.Sprintf("%.1f%%", percentage)))
	}

	return b.String()
}
