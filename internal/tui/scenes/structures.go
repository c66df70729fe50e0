package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tui/components"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuimsg"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// StructuresModel represents the promote structure browsing scene
type StructuresModel struct {
	structures    []domain.PromoteStructure
	selectedIndex int
	cards         []*components.StructureCard
	width         int
	height        int
}

// NewStructuresModel creates a new structures scene model
func NewStructuresModel() *StructuresModel {
	return &StructuresModel{
		structures:    []domain.PromoteStructure{},
		selectedIndex: 0,
		cards:         []*components.StructureCard{},
	}
}

// SetStructures updates the promote structure list
func (m *StructuresModel) SetStructures(structures []domain.PromoteStructure) {
	m.structures = structures
	m.cards = []*components.StructureCard{}

	// Build structure cards
	for _, structure := range structures {
		card := components.NewStructureCard(structure.Name).
			WithWidth(34).
			WithDetail(formatTierCount(len(structure.Tiers)))

		if len(structure.Tiers) > 0 {
			top := structure.SortedTiers()[len(structure.Tiers)-1]
			card.AddHighlight(fmt.Sprintf("top tier GP %s%%", top.GPSplitPct.StringFixed(0)))
		}

		m.cards = append(m.cards, card)
	}

	// Reset selection if out of bounds
	if m.selectedIndex >= len(m.structures) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *StructuresModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedStructure returns the currently selected structure name
func (m *StructuresModel) SelectedStructure() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.structures) {
		return m.structures[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the structures scene
func (m *StructuresModel) Update(msg tea.Msg) (*StructuresModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m *StructuresModel) handleKeyPress(msg tea.KeyMsg) (*StructuresModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveUp()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveDown()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		// Select structure and trigger the waterfall run
		return m, m.selectStructure()

	case key.Matches(msg, key.NewBinding(key.WithKeys("g"))):
		// Go to top
		m.selectedIndex = 0
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("G"))):
		// Go to bottom
		m.selectedIndex = len(m.structures) - 1
		if m.selectedIndex < 0 {
			m.selectedIndex = 0
		}
		return m, nil
	}

	return m, nil
}

// moveUp moves selection up
func (m *StructuresModel) moveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// moveDown moves selection down
func (m *StructuresModel) moveDown() {
	if m.selectedIndex < len(m.structures)-1 {
		m.selectedIndex++
	}
}

// selectStructure returns a command to select the current structure
func (m *StructuresModel) selectStructure() tea.Cmd {
	structureName := m.SelectedStructure()
	if structureName == "" {
		return nil
	}

	return func() tea.Msg {
		return tuimsg.StructureSelectedMsg{StructureName: structureName}
	}
}

// View renders the structures scene
func (m *StructuresModel) View() string {
	if len(m.structures) == 0 {
		return renderNoStructures()
	}

	// Update card selection states
	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	// Split view: list on left, tier ladder on right
	leftPane := renderStructureList(m.cards, m.selectedIndex)
	rightPane := renderTierLadder(m.structures[m.selectedIndex])

	// Join horizontally
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPane,
		"  ", // Spacer
		rightPane,
	)

	// Add help text
	content += "\n\n"
	content += renderStructuresHelp()

	return content
}

// renderNoStructures renders the empty state when no structures are loaded
func renderNoStructures() string {
	return `No promote structures available.

Please load a deal file with promote structures defined.

Press ESC to return to home.`
}

// renderStructuresHelp renders keyboard shortcuts help
func renderStructuresHelp() string {
	return "↑/k up • ↓/j down • Enter run waterfall • g top • G bottom • ESC back"
}

// formatTierCount formats the tier count
func formatTierCount(count int) string {
	if count == 1 {
		return "1 tier"
	}
	return fmt.Sprintf("%d tiers", count)
}

// renderStructureList renders the structure list pane
func renderStructureList(cards []*components.StructureCard, selectedIndex int) string {
	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(40)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	title := titleStyle.Render("Promote Structures")
	list := components.StructureListCompact(cards, selectedIndex)

	return listStyle.Render(title + "\n" + list)
}

// renderTierLadder renders the tier ladder for a structure
func renderTierLadder(structure domain.PromoteStructure) string {
	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Width(60)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	labelStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorForeground)

	var content strings.Builder

	// Title
	content.WriteString(titleStyle.Render(structure.Name))
	content.WriteString("\n\n")

	// Tier ladder
	content.WriteString(labelStyle.Render("Tier Ladder:"))
	content.WriteString("\n")

	if len(structure.Tiers) == 0 {
		content.WriteString(valueStyle.Render("  No tiers defined"))
		content.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-4s %-14s %-10s %-10s", "#", "IRR Hurdle", "GP", "LP")
		content.WriteString(labelStyle.Render(header))
		content.WriteString("\n")
		content.WriteString(labelStyle.Render("  " + strings.Repeat("─", 40)))
		content.WriteString("\n")

		for _, tier := range structure.SortedTiers() {
			hurdle := tier.HurdlePct.StringFixed(2) + "%"
			if tier.HurdlePct.IsZero() {
				hurdle = "base"
			}
			row := fmt.Sprintf("  %-4d %-14s %-10s %-10s",
				tier.Order,
				hurdle,
				tier.GPSplitPct.StringFixed(1)+"%",
				tier.LPSplitPct.StringFixed(1)+"%")
			content.WriteString(valueStyle.Render(row))
			content.WriteString("\n")
		}
	}

	// Press Enter hint
	content.WriteString("\n")
	hintStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Italic(true)
	content.WriteString(hintStyle.Render("Press Enter to run the waterfall with this structure"))

	return detailStyle.Render(content.String())
}
