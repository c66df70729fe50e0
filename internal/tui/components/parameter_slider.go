package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable underwriting assumption with a
// visual slider bar. Values are plain float64s; callers convert to and from
// decimals at the edges.
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Unit        string // e.g. "%", " years"
	Format      string // e.g. "%.2f", "%.0f"
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider for the given range.
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.2f",
		Width:  30,
	}
}

// WithUnit sets the unit suffix.
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithFormat sets the value format string.
func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

// WithWidth sets the slider bar width.
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds help text under the slider.
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state.
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment raises the value by one step, stopping at the maximum.
func (p *ParameterSlider) Increment() {
	if next := p.Value + p.Step; next <= p.Max {
		p.Value = next
	}
}

// Decrement lowers the value by one step, stopping at the minimum.
func (p *ParameterSlider) Decrement() {
	if next := p.Value - p.Step; next >= p.Min {
		p.Value = next
	}
}

// SetValue sets the value directly, clamped to the range.
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Fraction returns how far along the range the value sits, in [0, 1].
func (p *ParameterSlider) Fraction() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Render returns the full multi-line slider.
func (p *ParameterSlider) Render() string {
	var b strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(p.formatValue(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.renderBar(p.Width))

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	b.WriteString("\n")
	b.WriteString(rangeStyle.Render(
		fmt.Sprintf("%s  ─  %s", p.formatValue(p.Min), p.formatValue(p.Max)),
	))

	if p.Description != "" {
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		b.WriteString("\n")
		b.WriteString(descStyle.Render(p.Description))
	}

	if p.IsFocused {
		hintStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorInfo).
			Italic(true)
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("← → to adjust • ↑↓ to navigate"))
	}

	return b.String()
}

// RenderCompact returns a single-line version with a mini bar.
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	return fmt.Sprintf("%s %s %s",
		labelStyle.Render(p.Label+":"),
		valueStyle.Render(p.formatValue(p.Value)),
		p.renderBar(10),
	)
}

// formatValue renders a value with the slider's format and unit.
func (p *ParameterSlider) formatValue(v float64) string {
	s := fmt.Sprintf(p.Format, v)
	return s + p.Unit
}

// renderBar draws the track with the thumb at the value's position:
// [━━━●──────].
func (p *ParameterSlider) renderBar(width int) string {
	filled := int(math.Round(float64(width) * p.Fraction()))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty := width - filled; empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")
	return bar.String()
}
