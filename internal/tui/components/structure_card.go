package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// StructureCard displays a compact promote structure overview.
type StructureCard struct {
	Name       string
	Detail     string   // one-line summary, e.g. "3 tiers"
	Highlights []string // key ladder facts
	IsSelected bool
	Width      int
}

// NewStructureCard creates a card for the named structure.
func NewStructureCard(name string) *StructureCard {
	return &StructureCard{
		Name:       name,
		Highlights: []string{},
		Width:      44,
	}
}

// WithDetail sets the summary line under the name.
func (s *StructureCard) WithDetail(detail string) *StructureCard {
	s.Detail = detail
	return s
}

// AddHighlight adds a key fact about the ladder.
func (s *StructureCard) AddHighlight(highlight string) *StructureCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected.
func (s *StructureCard) SetSelected(selected bool) *StructureCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width.
func (s *StructureCard) WithWidth(width int) *StructureCard {
	s.Width = width
	return s
}

// Render returns the bordered card.
func (s *StructureCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(s.Name))
	content.WriteString("\n")

	if s.Detail != "" {
		detailStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(detailStyle.Render(s.Detail))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString("\n")
		for _, h := range s.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	borderColor := tuistyles.ColorBorder
	if s.IsSelected {
		borderColor = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version for selection lists.
func (s *StructureCard) RenderCompact() string {
	var parts []string

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	parts = append(parts, nameStyle.Render(s.Name))

	mutedStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	if s.Detail != "" {
		parts = append(parts, mutedStyle.Render("("+s.Detail+")"))
	}
	if len(s.Highlights) > 0 {
		parts = append(parts, mutedStyle.Render("• "+s.Highlights[0]))
	}

	return strings.Join(parts, " ")
}

// StructureListCompact renders a selectable compact list of cards.
func StructureListCompact(cards []*StructureCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No promote structures available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(fmt.Sprintf("%s%s", prefix, card.RenderCompact()))
	}

	return strings.Join(rendered, "\n")
}
