package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tui/components"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// resultsMode tracks which calculation the scene is displaying.
type resultsMode int

const (
	resultsNone resultsMode = iota
	resultsWaterfall
	resultsProjection
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	mode          resultsMode
	structureName string
	waterfall     *domain.WaterfallResult
	projection    *domain.TermSheetProjection
	width         int
	height        int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetWaterfall displays a waterfall distribution result
func (m *ResultsModel) SetWaterfall(structureName string, result *domain.WaterfallResult) {
	m.mode = resultsWaterfall
	m.structureName = structureName
	m.waterfall = result
}

// SetProjection displays a term sheet projection
func (m *ResultsModel) SetProjection(projection *domain.TermSheetProjection) {
	m.mode = resultsProjection
	m.projection = projection
	if projection != nil {
		m.structureName = projection.StructureName
	}
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Results scene is read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	switch m.mode {
	case resultsWaterfall:
		if m.waterfall != nil {
			return m.renderWaterfall()
		}
	case resultsProjection:
		if m.projection != nil {
			return m.renderProjection()
		}
	}
	return renderNoResultsState()
}

// renderNoResultsState renders empty state
func renderNoResultsState() string {
	return `No results to display.

Run a waterfall from the Structures screen (press 's') or project
the term sheet from the Parameters screen (press 'p').

Press ESC to go back.`
}

// renderWaterfall renders a waterfall distribution result
func (m *ResultsModel) renderWaterfall() string {
	result := m.waterfall

	header := renderResultsHeader("Waterfall Distribution",
		fmt.Sprintf("Structure: %s • %s tier selection",
			result.StructureName, formatStrategy(result.StrategyUsed)))
	metrics := renderSummaryMetrics(result.Summary)
	table := renderDistributionTable(result.Distributions)
	chart := renderCumulativeChart(result.Distributions)
	help := renderResultsHelp()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		metrics,
		"",
		table,
		"",
		chart,
		"",
		help,
	)
}

// renderProjection renders a term sheet projection
func (m *ResultsModel) renderProjection() string {
	projection := m.projection

	header := renderResultsHeader("Term Sheet Projection",
		fmt.Sprintf("Structure: %s • %s tier selection",
			projection.StructureName, formatStrategy(projection.StrategyUsed)))
	metrics := renderProjectionMetrics(projection)
	table := renderProjectionTable(projection.Years)
	help := renderResultsHelp()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		metrics,
		"",
		table,
		"",
		help,
	)
}

// renderResultsHeader renders the header with title and subtitle
func renderResultsHeader(title, subtitle string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		subtitleStyle.Render(subtitle),
	)
}

// renderSummaryMetrics renders the per-side return metrics as cards
func renderSummaryMetrics(summary domain.ReturnsSummary) string {
	cards := []*components.MetricCard{
		components.NewMetricCard("LP IRR", pctOrNA(summary.LPIRRPct)).WithWidth(28),
		components.NewMetricCard("GP IRR", pctOrNA(summary.GPIRRPct)).WithWidth(28),
		components.NewMetricCard("Total Distributed",
			formatCurrencyShort(summary.TotalDistributed.InexactFloat64())).WithWidth(28),
		components.NewMetricCard("LP Multiple",
			summary.LPEquityMultiple.StringFixed(2)+"x").WithWidth(28),
		components.NewMetricCard("GP Multiple",
			summary.GPEquityMultiple.StringFixed(2)+"x").WithWidth(28),
		components.NewMetricCard("LP / GP Split",
			fmt.Sprintf("%s / %s",
				formatCurrencyShort(summary.TotalLP.InexactFloat64()),
				formatCurrencyShort(summary.TotalGP.InexactFloat64()))).WithWidth(28),
	}

	// Display in grid (3 columns)
	return components.MetricGrid(cards, 3)
}

// renderProjectionMetrics renders the projection's key metrics as cards
func renderProjectionMetrics(projection *domain.TermSheetProjection) string {
	summary := projection.Summary

	cards := []*components.MetricCard{
		components.NewMetricCard("LP IRR", pctOrNA(summary.LPIRRPct)).WithWidth(28),
		components.NewMetricCard("GP IRR", pctOrNA(summary.GPIRRPct)).WithWidth(28),
		components.NewMetricCard("Net Sale Proceeds",
			formatCurrencyShort(projection.NetSaleProceeds.InexactFloat64())).WithWidth(28),
		components.NewMetricCard("Sale Price",
			formatCurrencyShort(projection.SaleProceeds.InexactFloat64())).WithWidth(28),
		components.NewMetricCard("Loan Balance at Exit",
			formatCurrencyShort(projection.LoanBalanceAtExit.InexactFloat64())).WithWidth(28),
		components.NewMetricCard("LP Multiple",
			summary.LPEquityMultiple.StringFixed(2)+"x").WithWidth(28),
	}

	return components.MetricGrid(cards, 3)
}

// renderDistributionTable renders the per-period distribution rows
func renderDistributionTable(distributions []domain.YearlyDistribution) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Period-by-Period Distributions"))
	content.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)

	header := fmt.Sprintf("%-8s  %-14s  %-12s  %-6s  %-14s  %-14s",
		"Period", "Cash Flow", "IRR", "Tier", "GP", "LP")
	content.WriteString(headerStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 76))
	content.WriteString("\n")

	// Show first 10 periods
	maxRows := min(10, len(distributions))
	for i := 0; i < maxRows; i++ {
		dist := distributions[i]

		row := fmt.Sprintf("%-8d  %-14s  %-12s  %-6d  %-14s  %-14s",
			dist.Period,
			formatCurrencyShort(dist.TotalCashFlow.InexactFloat64()),
			pctOrNA(dist.ReferenceIRRPct),
			dist.TierOrder,
			formatCurrencyShort(dist.GPAmount.InexactFloat64()),
			formatCurrencyShort(dist.LPAmount.InexactFloat64()))
		content.WriteString(row)
		content.WriteString("\n")
	}

	if len(distributions) > maxRows {
		moreStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString("\n")
		content.WriteString(moreStyle.Render(fmt.Sprintf("... and %d more periods", len(distributions)-maxRows)))
	}

	return tableStyle.Render(content.String())
}

// renderProjectionTable renders the projected year rows
func renderProjectionTable(years []domain.TermSheetYear) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Year-by-Year Projection"))
	content.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)

	header := fmt.Sprintf("%-6s  %-12s  %-14s  %-12s  %-8s  %-6s",
		"Year", "NOI", "Debt Service", "Cash Flow", "Yield", "Tier")
	content.WriteString(headerStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 68))
	content.WriteString("\n")

	// Show first 10 years
	maxRows := min(10, len(years))
	for i := 0; i < maxRows; i++ {
		year := years[i]

		row := fmt.Sprintf("%-6d  %-12s  %-14s  %-12s  %-8s  %-6d",
			year.Year,
			formatCurrencyShort(year.NOI.InexactFloat64()),
			formatCurrencyShort(year.DebtService.InexactFloat64()),
			formatCurrencyShort(year.CashFlowAfterDebt.InexactFloat64()),
			year.CashYieldPct.StringFixed(1)+"%",
			year.TierOrder)
		content.WriteString(row)
		content.WriteString("\n")
	}

	if len(years) > maxRows {
		moreStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString("\n")
		content.WriteString(moreStyle.Render(fmt.Sprintf("... and %d more years", len(years)-maxRows)))
	}

	return tableStyle.Render(content.String())
}

// renderCumulativeChart renders cumulative GP/LP distributions over time
func renderCumulativeChart(distributions []domain.YearlyDistribution) string {
	if len(distributions) < 2 {
		return ""
	}

	lpPoints := make([]float64, len(distributions))
	gpPoints := make([]float64, len(distributions))
	labels := make([]string, len(distributions))
	for i, dist := range distributions {
		lpPoints[i] = dist.CumulativeLP.InexactFloat64()
		gpPoints[i] = dist.CumulativeGP.InexactFloat64()
		labels[i] = fmt.Sprintf("P%d", dist.Period)
	}

	chart := components.NewASCIIChart("Cumulative Distributions").
		AddSeries("LP", lpPoints, tuistyles.ColorChartLine1).
		AddSeries("GP", gpPoints, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(72, 10)

	return chart.Render()
}

// renderResultsHelp renders keyboard shortcuts
func renderResultsHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("s structures • p parameters • c compare • h home • ESC back")
}

// formatStrategy turns a strategy identifier into display text
func formatStrategy(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// pctOrNA formats an optional percentage, showing n/a when the rate is
// undefined for the side
func pctOrNA(pct *decimal.Decimal) string {
	if pct == nil {
		return "n/a"
	}
	return pct.StringFixed(2) + "%"
}

// formatCurrencyShort formats currency in short form
func formatCurrencyShort(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	if value >= 1000000 {
		return fmt.Sprintf("%s$%.1fM", sign, value/1000000)
	} else if value >= 1000 {
		return fmt.Sprintf("%s$%.0fK", sign, value/1000)
	}
	return fmt.Sprintf("%s$%.0f", sign, value)
}
