package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/compare"
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuimsg"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// CompareModel represents the promote structure comparison scene
type CompareModel struct {
	structures         []domain.PromoteStructure
	selectedStructures map[int]bool // Track which structures are selected for comparison
	cursorIndex        int
	results            *compare.ComparisonSet
	comparing          bool
	width              int
	height             int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{
		structures:         []domain.PromoteStructure{},
		selectedStructures: make(map[int]bool),
		cursorIndex:        0,
		comparing:          false,
	}
}

// SetStructures updates the structure list
func (m *CompareModel) SetStructures(structures []domain.PromoteStructure) {
	m.structures = structures
	m.selectedStructures = make(map[int]bool)
	m.cursorIndex = 0
	m.results = nil
}

// SetResults stores comparison results
func (m *CompareModel) SetResults(results *compare.ComparisonSet) {
	m.results = results
	m.comparing = false
}

// ClearResults drops any results and returns to the selection view
func (m *CompareModel) ClearResults() {
	m.results = nil
	m.comparing = false
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursorIndex > 0 {
				m.cursorIndex--
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursorIndex < len(m.structures)-1 {
				m.cursorIndex++
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys(" ", "x"))):
			// Toggle selection
			m.selectedStructures[m.cursorIndex] = !m.selectedStructures[m.cursorIndex]
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			// Start comparison; the first selected structure is the baseline
			if len(m.getSelectedStructures()) < 2 {
				return m, nil // Need at least 2 structures
			}
			m.comparing = true
			return m, m.startComparisonCmd()

		case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
			// Start over
			m.selectedStructures = make(map[int]bool)
			m.results = nil
			return m, nil
		}
	}

	return m, nil
}

// getSelectedStructures returns the selected structure names in index order
func (m *CompareModel) getSelectedStructures() []string {
	var selected []string
	// Iterate in order by index to maintain consistent ordering
	for idx := 0; idx < len(m.structures); idx++ {
		if m.selectedStructures[idx] {
			selected = append(selected, m.structures[idx].Name)
		}
	}
	return selected
}

// startComparisonCmd creates a command to start the structure comparison
func (m *CompareModel) startComparisonCmd() tea.Cmd {
	return func() tea.Msg {
		return tuimsg.ComparisonStartedMsg{
			StructureNames: m.getSelectedStructures(),
		}
	}
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.comparing {
		return m.renderLoading()
	}

	if m.results != nil {
		return m.renderComparison()
	}

	return m.renderSelection()
}

// renderSelection shows the structure selection interface
func (m *CompareModel) renderSelection() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Select Structures to Compare")
	content.WriteString(title)
	content.WriteString("\n\n")

	if len(m.structures) == 0 {
		content.WriteString(tuistyles.ErrorStyle.Render("No promote structures available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	// Instructions
	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	instructions := subtleStyle.Render(
		"Use ↑/↓ to navigate • Space/x to select • Enter to compare • n to clear\n" +
			"The first structure selected becomes the baseline",
	)
	content.WriteString(instructions)
	content.WriteString("\n\n")

	// Structure list with checkboxes
	for idx, structure := range m.structures {
		var line strings.Builder

		// Cursor
		cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
		if idx == m.cursorIndex {
			line.WriteString(cursorStyle.Render("❯ "))
		} else {
			line.WriteString("  ")
		}

		// Checkbox
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
		if m.selectedStructures[idx] {
			line.WriteString(highlightStyle.Render("[✓] "))
		} else {
			line.WriteString(subtleStyle.Render("[ ] "))
		}

		// Structure name
		structureName := structure.Name
		if idx == m.cursorIndex {
			structureName = highlightStyle.Render(structureName)
		}
		line.WriteString(structureName)

		// Show tier count
		tierInfo := subtleStyle.Render(
			fmt.Sprintf(" (%s)", formatTierCount(len(structure.Tiers))),
		)
		line.WriteString(tierInfo)

		content.WriteString(line.String())
		content.WriteString("\n")
	}

	// Selection summary
	selectedCount := len(m.getSelectedStructures())
	content.WriteString("\n")
	warningStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	if selectedCount == 0 {
		content.WriteString(subtleStyle.Render("Select at least 2 structures to compare"))
	} else if selectedCount == 1 {
		content.WriteString(warningStyle.Render(
			fmt.Sprintf("Selected: %d structure (need at least 2)", selectedCount),
		))
	} else {
		content.WriteString(successStyle.Render(
			fmt.Sprintf("Selected: %d structures • Press Enter to compare", selectedCount),
		))
	}

	return tuistyles.BorderStyle.Render(content.String())
}

// renderLoading shows loading state during comparison
func (m *CompareModel) renderLoading() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Comparing Promote Structures...")
	content.WriteString(title)
	content.WriteString("\n\n")

	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
	content.WriteString("⠋ Running waterfalls for ")
	content.WriteString(highlightStyle.Render(fmt.Sprintf("%d structures", len(m.getSelectedStructures()))))
	content.WriteString("...\n")

	return tuistyles.BorderStyle.Render(content.String())
}

// renderComparison shows the comparison results
func (m *CompareModel) renderComparison() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Structure Comparison")
	content.WriteString(title)
	content.WriteString("\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render(
		fmt.Sprintf("Deal: %s • Baseline: %s", m.results.DealName, m.results.BaseStructureName),
	))
	content.WriteString("\n\n")

	// Build comparison table
	content.WriteString(m.renderComparisonTable())

	// Recommendations
	if len(m.results.Recommendations) > 0 {
		content.WriteString("\n")
		recStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorInfo)
		for _, rec := range m.results.Recommendations {
			content.WriteString(recStyle.Render("💡 " + rec))
			content.WriteString("\n")
		}
	}

	// Help text
	content.WriteString("\n")
	help := subtleStyle.Render("n to start a new comparison • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// comparisonRow describes one metric row of the comparison table. rank
// returns the value used for the best-value highlight, or nil when the
// metric has no defensible "best" side.
type comparisonRow struct {
	label string
	value func(*compare.ComparisonResult) string
	rank  func(*compare.ComparisonResult) *decimal.Decimal
}

// renderComparisonTable creates a side-by-side comparison table
func (m *CompareModel) renderComparisonTable() string {
	var table strings.Builder

	// Base first, alternatives in engine order
	columns := []*compare.ComparisonResult{m.results.BaseResult}
	for i := range m.results.AlternativeResults {
		columns = append(columns, &m.results.AlternativeResults[i])
	}

	// Table header
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)

	metricWidth := 25
	table.WriteString(headerStyle.Render(padRight("Metric", metricWidth)))
	table.WriteString(" ")

	colWidth := 18
	for _, col := range columns {
		shortName := truncate(col.StructureName, colWidth)
		table.WriteString(headerStyle.Render(padRight(shortName, colWidth)))
		table.WriteString(" ")
	}
	table.WriteString("\n")

	// Separator
	totalWidth := metricWidth + (len(columns) * (colWidth + 1))
	table.WriteString(strings.Repeat("─", totalWidth))
	table.WriteString("\n")

	rows := []comparisonRow{
		{
			label: "LP IRR",
			value: func(r *compare.ComparisonResult) string { return pctOrNA(r.LPIRRPct) },
			rank:  func(r *compare.ComparisonResult) *decimal.Decimal { return r.LPIRRPct },
		},
		{
			label: "GP IRR",
			value: func(r *compare.ComparisonResult) string { return pctOrNA(r.GPIRRPct) },
			rank:  func(r *compare.ComparisonResult) *decimal.Decimal { return r.GPIRRPct },
		},
		{
			label: "LP Equity Multiple",
			value: func(r *compare.ComparisonResult) string { return r.LPEquityMultiple.StringFixed(2) + "x" },
			rank:  func(r *compare.ComparisonResult) *decimal.Decimal { return &r.LPEquityMultiple },
		},
		{
			label: "Total to LP",
			value: func(r *compare.ComparisonResult) string {
				return formatCompactCurrency(r.TotalLP.InexactFloat64())
			},
			rank: func(r *compare.ComparisonResult) *decimal.Decimal { return &r.TotalLP },
		},
		{
			label: "Total to GP",
			value: func(r *compare.ComparisonResult) string {
				return formatCompactCurrency(r.TotalGP.InexactFloat64())
			},
			rank: func(r *compare.ComparisonResult) *decimal.Decimal { return &r.TotalGP },
		},
		{
			// Whether a higher sponsor share is "better" depends on which
			// side of the table you sit on, so no highlight here.
			label: "GP Profit Share",
			value: func(r *compare.ComparisonResult) string { return r.GPProfitSharePct.StringFixed(1) + "%" },
			rank:  nil,
		},
	}

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)

	for _, row := range rows {
		// Metric label
		table.WriteString(subtleStyle.Render(padRight(row.label, metricWidth)))
		table.WriteString(" ")

		// Find best value for highlighting
		var bestValue decimal.Decimal
		bestValueSet := false
		if row.rank != nil {
			for _, col := range columns {
				value := row.rank(col)
				if value == nil {
					continue
				}
				if !bestValueSet || value.GreaterThan(bestValue) {
					bestValue = *value
					bestValueSet = true
				}
			}
		}

		// Values for each structure
		for _, col := range columns {
			valueStr := row.value(col)
			if bestValueSet {
				if value := row.rank(col); value != nil && value.Equal(bestValue) {
					valueStr = successStyle.Render(valueStr + " ★")
				}
			}
			table.WriteString(padRight(valueStr, colWidth))
			table.WriteString(" ")
		}
		table.WriteString("\n")
	}

	return table.String()
}

// Helper functions

func padRight(s string, width int) string {
	// Use lipgloss.Width to account for ANSI escape codes
	currentWidth := lipgloss.Width(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func formatCompactCurrency(amount float64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("$%.2fM", amount/1000000)
	} else if amount >= 1000 {
		return fmt.Sprintf("$%.1fK", amount/1000)
	}
	return fmt.Sprintf("$%.0f", amount)
}
