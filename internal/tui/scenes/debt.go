package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tui/components"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuimsg"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// DebtMode represents the step of the debt sizing flow
type DebtMode int

const (
	ModeInputNOI DebtMode = iota
	ModeInputDSCR
	ModeShowSizing
)

// DebtModel represents the debt sizing scene
type DebtModel struct {
	deal       *domain.DealConfig
	mode       DebtMode
	noiInput   textinput.Model
	dscrInput  textinput.Model
	inputError string
	sizing     bool
	result     *domain.DebtSizingResult
	resultNOI  decimal.Decimal
	resultDSCR decimal.Decimal
	width      int
	height     int
}

// NewDebtModel creates a new debt sizing scene model
func NewDebtModel() *DebtModel {
	noi := textinput.New()
	noi.Placeholder = "e.g., 300000"
	noi.CharLimit = 12
	noi.Width = 20

	dscr := textinput.New()
	dscr.Placeholder = "e.g., 1.25"
	dscr.CharLimit = 6
	dscr.Width = 20

	return &DebtModel{
		mode:      ModeInputNOI,
		noiInput:  noi,
		dscrInput: dscr,
		sizing:    false,
	}
}

// SetDeal updates the deal and prefills the inputs from its debt sizing
// assumptions when present
func (m *DebtModel) SetDeal(deal *domain.DealConfig) {
	m.deal = deal
	m.mode = ModeInputNOI
	m.result = nil
	m.inputError = ""

	if deal != nil && deal.DebtSizing != nil {
		m.noiInput.SetValue(deal.DebtSizing.NOI.StringFixed(0))
		m.dscrInput.SetValue(deal.DebtSizing.DSCRTarget.StringFixed(2))
	}
}

// SetSize updates the model dimensions
func (m *DebtModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResult updates the sizing result
func (m *DebtModel) SetResult(result *domain.DebtSizingResult) {
	m.result = result
	m.sizing = false
	m.mode = ModeShowSizing
}

// IsEditing reports whether a text input currently owns the keyboard, so
// the root model knows to pass keystrokes through instead of treating them
// as global shortcuts
func (m *DebtModel) IsEditing() bool {
	switch m.mode {
	case ModeInputNOI:
		return m.noiInput.Focused()
	case ModeInputDSCR:
		return m.dscrInput.Focused()
	}
	return false
}

// Update handles messages for the debt sizing scene
func (m *DebtModel) Update(msg tea.Msg) (*DebtModel, tea.Cmd) {
	switch m.mode {
	case ModeInputNOI:
		return m.updateNOIInput(msg)
	case ModeInputDSCR:
		return m.updateDSCRInput(msg)
	case ModeShowSizing:
		return m.updateResults(msg)
	}
	return m, nil
}

// updateNOIInput handles the NOI entry step
func (m *DebtModel) updateNOIInput(msg tea.Msg) (*DebtModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.noiInput.Focused() {
			// Input is blurred; only resume editing here, navigation is
			// handled by the root model
			if key.Matches(msg, key.NewBinding(key.WithKeys("e", "enter"))) {
				m.noiInput.Focus()
				return m, textinput.Blink
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			// Validate and move to the DSCR step
			if noi, err := strconv.ParseFloat(m.noiInput.Value(), 64); err != nil || noi <= 0 {
				m.inputError = "NOI must be a positive number"
				return m, nil
			}
			m.inputError = ""
			m.mode = ModeInputDSCR
			m.noiInput.Blur()
			m.dscrInput.Focus()
			return m, textinput.Blink

		case tea.KeyEsc:
			// Release the keyboard so global shortcuts work again
			m.noiInput.Blur()
			m.inputError = ""
			return m, nil
		}
	}

	// Update text input
	var cmd tea.Cmd
	m.noiInput, cmd = m.noiInput.Update(msg)
	return m, cmd
}

// updateDSCRInput handles the DSCR target entry step
func (m *DebtModel) updateDSCRInput(msg tea.Msg) (*DebtModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.dscrInput.Focused() {
			if key.Matches(msg, key.NewBinding(key.WithKeys("e", "enter"))) {
				m.dscrInput.Focus()
				return m, textinput.Blink
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			// Validate both values and start the sizing
			noi, err := strconv.ParseFloat(m.noiInput.Value(), 64)
			if err != nil || noi <= 0 {
				m.inputError = "NOI must be a positive number"
				return m, nil
			}
			dscr, err := strconv.ParseFloat(m.dscrInput.Value(), 64)
			if err != nil {
				m.inputError = "DSCR target must be a number"
				return m, nil
			}
			if dscr < 1.0 {
				m.inputError = "DSCR target below 1.0 would not cover debt service"
				return m, nil
			}
			m.inputError = ""
			m.sizing = true
			m.resultNOI = decimal.NewFromFloat(noi)
			m.resultDSCR = decimal.NewFromFloat(dscr)
			return m, m.startSizingCmd(m.resultNOI, m.resultDSCR)

		case tea.KeyEsc:
			// Go back to the NOI step
			m.mode = ModeInputNOI
			m.inputError = ""
			m.dscrInput.Blur()
			m.noiInput.Focus()
			return m, textinput.Blink
		}
	}

	// Update text input
	var cmd tea.Cmd
	m.dscrInput, cmd = m.dscrInput.Update(msg)
	return m, cmd
}

// updateResults handles the results display
func (m *DebtModel) updateResults(msg tea.Msg) (*DebtModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
			// Start a new sizing with the previous values prefilled
			m.mode = ModeInputNOI
			m.result = nil
			m.noiInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// startSizingCmd creates a command to start the debt sizing
func (m *DebtModel) startSizingCmd(noi, dscrTarget decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.DebtSizingStartedMsg{
			NOI:        noi,
			DSCRTarget: dscrTarget,
		}
	}
}

// View renders the debt sizing scene
func (m *DebtModel) View() string {
	if m.sizing {
		return m.renderSizing()
	}

	switch m.mode {
	case ModeInputNOI:
		return m.renderNOIInput()
	case ModeInputDSCR:
		return m.renderDSCRInput()
	case ModeShowSizing:
		return m.renderResults()
	}

	return ""
}

// renderNOIInput shows the NOI entry step
func (m *DebtModel) renderNOIInput() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Debt Sizing Calculator")
	content.WriteString(title)
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	description := subtleStyle.Render(
		"Size the maximum supportable loan from NOI, a DSCR target, and the deal's loan terms.",
	)
	content.WriteString(description)
	content.WriteString("\n\n")

	content.WriteString(m.renderLoanContext())

	content.WriteString(subtleStyle.Render("Enter the stabilized annual net operating income:"))
	content.WriteString("\n\n")

	content.WriteString(renderInputBox("$ "+m.noiInput.View(), m.noiInput.Focused()))
	content.WriteString("\n\n")

	content.WriteString(m.renderInputError())

	help := subtleStyle.Render("Enter to continue • ESC to release the keyboard")
	if !m.noiInput.Focused() {
		help = subtleStyle.Render("e to edit • ESC to go back")
	}
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderDSCRInput shows the DSCR target entry step
func (m *DebtModel) renderDSCRInput() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Debt Sizing Calculator")
	content.WriteString(title)
	content.WriteString("\n\n")

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	content.WriteString(subtleStyle.Render("NOI: "))
	content.WriteString(valueStyle.Render("$" + m.noiInput.Value()))
	content.WriteString("\n\n")

	content.WriteString(subtleStyle.Render("Enter the lender's minimum debt service coverage ratio:"))
	content.WriteString("\n\n")

	content.WriteString(renderInputBox("DSCR ≥ "+m.dscrInput.View(), m.dscrInput.Focused()))
	content.WriteString("\n\n")

	content.WriteString(m.renderInputError())

	help := subtleStyle.Render("Enter to size the debt • ESC to go back to NOI")
	if !m.dscrInput.Focused() {
		help = subtleStyle.Render("e to edit • ESC to go back")
	}
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderSizing shows progress while the sizing runs
func (m *DebtModel) renderSizing() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Sizing the Maximum Supportable Debt...")
	content.WriteString(title)
	content.WriteString("\n\n")

	content.WriteString("⠋ Solving the mortgage constant...")
	content.WriteString("\n")

	return tuistyles.BorderStyle.Render(content.String())
}

// renderResults shows the sizing results
func (m *DebtModel) renderResults() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	title := titleStyle.Render("Debt Sizing Results")
	content.WriteString(title)
	content.WriteString("\n\n")

	if m.result == nil {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		content.WriteString(subtleStyle.Render("No results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	successStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	// Inputs
	content.WriteString(labelStyle.Render("NOI: "))
	content.WriteString(formatDollars(m.resultNOI))
	content.WriteString(labelStyle.Render("  •  DSCR Target: "))
	content.WriteString(m.resultDSCR.StringFixed(2) + "x")
	content.WriteString("\n")
	content.WriteString(m.renderLoanContext())

	// Headline number
	content.WriteString(labelStyle.Render("Maximum Loan Amount: "))
	content.WriteString(successStyle.Render(formatDollars(m.result.MaxLoanAmount)))
	content.WriteString("\n\n")

	// Supporting math
	content.WriteString(labelStyle.Render("Mortgage Constant: "))
	content.WriteString(m.result.MortgageConstant.Mul(decimal.NewFromInt(100)).StringFixed(3) + "%")
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Supportable Annual Debt Service: "))
	content.WriteString(formatDollars(m.result.MaxAnnualDebtService))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Monthly Payment at Max Loan: "))
	content.WriteString(formatDollars(m.result.MonthlyPayment))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Annual Payment at Max Loan: "))
	content.WriteString(formatDollars(m.result.AnnualPayment))
	content.WriteString("\n\n")

	// Compare against the deal's current loan
	content.WriteString(m.renderUtilization())

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	help := subtleStyle.Render("n for a new sizing • ESC to go back")
	content.WriteString(help)

	return tuistyles.BorderStyle.Render(content.String())
}

// renderLoanContext shows the loan terms the sizing runs on
func (m *DebtModel) renderLoanContext() string {
	if m.deal == nil {
		return ""
	}

	subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return subtleStyle.Render(fmt.Sprintf("Loan terms: %s%% over %d years, %d payments/year",
		m.deal.Loan.InterestRatePct.StringFixed(2),
		m.deal.Loan.AmortizationYears,
		m.deal.Loan.Periods())) + "\n\n"
}

// renderUtilization compares the deal's current principal to the sized max
func (m *DebtModel) renderUtilization() string {
	if m.deal == nil || !m.deal.Loan.Principal.IsPositive() || m.result == nil {
		return ""
	}

	var content strings.Builder

	bar := components.NewProgressBar(
		m.deal.Loan.Principal.InexactFloat64(),
		m.result.MaxLoanAmount.InexactFloat64(),
	).WithLabel("Loan Utilization").WithWidth(40)

	content.WriteString(bar.Render())
	content.WriteString("\n")

	if bar.Exceeded() {
		dangerStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger).Bold(true)
		over := m.deal.Loan.Principal.Sub(m.result.MaxLoanAmount)
		content.WriteString(dangerStyle.Render(fmt.Sprintf(
			"⚠ Current principal exceeds the supportable maximum by %s", formatDollars(over))))
	} else {
		subtleStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		headroom := m.result.MaxLoanAmount.Sub(m.deal.Loan.Principal)
		content.WriteString(subtleStyle.Render(fmt.Sprintf(
			"Current principal %s leaves %s of headroom",
			formatDollars(m.deal.Loan.Principal), formatDollars(headroom))))
	}
	content.WriteString("\n\n")

	return content.String()
}

// renderInputError shows the validation message for the current input
func (m *DebtModel) renderInputError() string {
	if m.inputError == "" {
		return ""
	}

	dangerStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	return dangerStyle.Render("✗ "+m.inputError) + "\n\n"
}

// renderInputBox wraps a text input in a bordered box
func renderInputBox(inner string, focused bool) string {
	borderColor := tuistyles.ColorBorder
	if focused {
		borderColor = tuistyles.ColorPrimary
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return inputStyle.Render(inner)
}

// formatDollars renders a decimal amount with two places
func formatDollars(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}
