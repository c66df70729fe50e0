package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	deal   *domain.DealConfig
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetDeal updates the loaded deal
func (m *HomeModel) SetDeal(deal *domain.DealConfig) {
	m.deal = deal
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is mostly passive - navigation handled by parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	if m.deal == nil {
		return m.renderLoading()
	}

	var content strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render(m.deal.DealName))
	content.WriteString("\n\n")

	// Deal Overview
	content.WriteString(m.renderDealOverview())
	content.WriteString("\n\n")

	// Promote Structures Overview
	content.WriteString(m.renderStructuresOverview())
	content.WriteString("\n\n")

	// Quick Actions
	content.WriteString(m.renderQuickActions())
	content.WriteString("\n\n")

	// Help
	content.WriteString(m.renderHelp())

	return tuistyles.BorderStyle.Render(content.String())
}

// renderLoading shows loading state
func (m *HomeModel) renderLoading() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("CREGO - CRE Deal Returns Explorer"))
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(subtleStyle.Render("Loading deal file..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderDealOverview shows capital stack and analysis input summary
func (m *HomeModel) renderDealOverview() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("📋 Deal Overview"))
	content.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	// Capital stack
	content.WriteString(labelStyle.Render("  Loan: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s at %s%% over %d year%s",
		tuistyles.FormatCurrency(m.deal.Loan.Principal.InexactFloat64()),
		m.deal.Loan.InterestRatePct.StringFixed(2),
		m.deal.Loan.AmortizationYears,
		pluralS(m.deal.Loan.AmortizationYears))))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("  Equity: "))
	content.WriteString(valueStyle.Render(tuistyles.FormatCurrency(m.deal.EquityInvestment.InexactFloat64())))
	split := m.deal.Split()
	content.WriteString(labelStyle.Render(fmt.Sprintf(" (GP %s%% / LP %s%%)",
		split.GPPct.StringFixed(0), split.LPPct.StringFixed(0))))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("  Preferred Return: "))
	content.WriteString(valueStyle.Render(m.deal.PreferredReturnPct.StringFixed(2) + "%"))
	content.WriteString("\n")

	// Analysis inputs
	if len(m.deal.CashFlows) > 0 {
		periods := len(m.deal.CashFlows) - 1
		content.WriteString(labelStyle.Render("  Cash Flows: "))
		content.WriteString(valueStyle.Render(fmt.Sprintf("%d period%s after close",
			periods, pluralS(periods))))
		content.WriteString("\n")
	}

	content.WriteString(labelStyle.Render("  Term Sheet: "))
	if m.deal.TermSheet != nil {
		content.WriteString(valueStyle.Render(fmt.Sprintf("%d-year hold, exit at %s%% cap",
			m.deal.TermSheet.TermYears, m.deal.TermSheet.ExitCapRatePct.StringFixed(2))))
	} else {
		content.WriteString(labelStyle.Render("not configured"))
	}
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("  Debt Sizing: "))
	if m.deal.DebtSizing != nil {
		content.WriteString(valueStyle.Render(fmt.Sprintf("NOI %s at %sx DSCR",
			tuistyles.FormatCurrency(m.deal.DebtSizing.NOI.InexactFloat64()),
			m.deal.DebtSizing.DSCRTarget.StringFixed(2))))
	} else {
		content.WriteString(labelStyle.Render("not configured"))
	}
	content.WriteString("\n")

	return content.String()
}

// renderStructuresOverview shows quick promote structure summary
func (m *HomeModel) renderStructuresOverview() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("📊 Promote Structures"))
	content.WriteString("\n")

	if len(m.deal.Structures) == 0 {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString(subtleStyle.Render("  No promote structures configured"))
		return content.String()
	}

	nameStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	// Show up to 5 structures
	displayCount := min(5, len(m.deal.Structures))
	for i := 0; i < displayCount; i++ {
		structure := m.deal.Structures[i]
		content.WriteString("  ")
		content.WriteString(nameStyle.Render(fmt.Sprintf("%d. %s", i+1, structure.Name)))

		tierCount := len(structure.Tiers)
		content.WriteString(subtleStyle.Render(fmt.Sprintf(" (%d tier%s)",
			tierCount, pluralS(tierCount))))
		content.WriteString("\n")
	}

	if len(m.deal.Structures) > 5 {
		content.WriteString(subtleStyle.Render(fmt.Sprintf("  ... and %d more",
			len(m.deal.Structures)-5)))
		content.WriteString("\n")
	}

	return content.String()
}

// renderQuickActions shows available navigation shortcuts
func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		MarginBottom(1)
	content.WriteString(sectionStyle.Render("⚡ Quick Actions"))
	content.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	actions := []struct {
		key  string
		desc string
	}{
		{"s", "Browse promote structures and run a waterfall"},
		{"p", "Edit underwriting parameters"},
		{"c", "Compare promote structures"},
		{"d", "Size the maximum supportable debt"},
		{"r", "View calculation results"},
		{"?", "Show help"},
	}

	for _, action := range actions {
		content.WriteString("  ")
		content.WriteString(keyStyle.Render(action.key))
		content.WriteString(descStyle.Render("  " + action.desc))
		content.WriteString("\n")
	}

	return content.String()
}

// renderHelp shows getting started tips
func (m *HomeModel) renderHelp() string {
	var content strings.Builder

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)

	content.WriteString(subtleStyle.Render("💡 Tip: Press 's' to pick a promote structure and run the waterfall"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render("    Press '?' at any time for help"))

	return content.String()
}

// Helper functions

func pluralS(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
