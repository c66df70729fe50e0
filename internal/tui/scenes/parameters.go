package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/tui/components"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuimsg"
	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// dealParameter identifies which deal assumption a slider edits.
type dealParameter int

const (
	paramInterestRate dealParameter = iota
	paramPreferredReturn
	paramNOIGrowth
	paramExitCapRate
	paramHoldPeriod
)

// ParametersModel represents the assumption editing scene
type ParametersModel struct {
	deal          *domain.DealConfig
	pristine      *domain.DealConfig
	sliders       []*components.ParameterSlider
	params        []dealParameter
	focusedSlider int
	width         int
	height        int
	modified      bool
	savedTo       string
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{
		sliders:       []*components.ParameterSlider{},
		params:        []dealParameter{},
		focusedSlider: 0,
		modified:      false,
	}
}

// SetDeal updates the deal being edited. A pristine copy is kept so edits
// can be reset without reloading the file.
func (m *ParametersModel) SetDeal(deal *domain.DealConfig) {
	if deal == nil {
		return
	}

	m.deal = deal
	m.pristine = deal.DeepCopy()
	m.modified = false
	m.savedTo = ""
	m.buildSliders()
}

// buildSliders creates sliders for the deal's adjustable assumptions
func (m *ParametersModel) buildSliders() {
	m.sliders = []*components.ParameterSlider{}
	m.params = []dealParameter{}

	if m.deal == nil || m.deal.TermSheet == nil {
		return
	}

	rate := m.deal.Loan.InterestRatePct.InexactFloat64()
	rateSlider := components.NewParameterSlider("Interest Rate", rate, 0, 12, 0.25).
		WithUnit("%").
		WithFormat("%.2f").
		WithWidth(40).
		WithDescription("Annual loan interest rate")
	m.addSlider(paramInterestRate, rateSlider)

	pref := m.deal.PreferredReturnPct.InexactFloat64()
	prefSlider := components.NewParameterSlider("Preferred Return", pref, 0, 15, 0.5).
		WithUnit("%").
		WithFormat("%.2f").
		WithWidth(40).
		WithDescription("Annual preferred return on invested equity")
	m.addSlider(paramPreferredReturn, prefSlider)

	growth := domain.DefaultNOIGrowthPct.InexactFloat64()
	if m.deal.TermSheet.NOIGrowthPct != nil {
		growth = m.deal.TermSheet.NOIGrowthPct.InexactFloat64()
	}
	growthSlider := components.NewParameterSlider("NOI Growth", growth, 0, 10, 0.25).
		WithUnit("%").
		WithFormat("%.2f").
		WithWidth(40).
		WithDescription("Annual net operating income growth")
	m.addSlider(paramNOIGrowth, growthSlider)

	exitCap := m.deal.TermSheet.ExitCapRatePct.InexactFloat64()
	exitSlider := components.NewParameterSlider("Exit Cap Rate", exitCap, 3, 12, 0.25).
		WithUnit("%").
		WithFormat("%.2f").
		WithWidth(40).
		WithDescription("Cap rate applied to final-year NOI at sale")
	m.addSlider(paramExitCapRate, exitSlider)

	hold := float64(m.deal.TermSheet.TermYears)
	holdSlider := components.NewParameterSlider("Hold Period", hold, 1, 15, 1).
		WithUnit(" years").
		WithFormat("%.0f").
		WithWidth(40).
		WithDescription("Years the deal is held before sale")
	m.addSlider(paramHoldPeriod, holdSlider)

	// Set focus on first slider
	if len(m.sliders) > 0 {
		m.focusedSlider = 0
		m.sliders[0].SetFocused(true)
	}
}

func (m *ParametersModel) addSlider(param dealParameter, slider *components.ParameterSlider) {
	m.params = append(m.params, param)
	m.sliders = append(m.sliders, slider)
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MarkSaved records that the edited deal was written back to disk
func (m *ParametersModel) MarkSaved(filename string) {
	m.modified = false
	m.savedTo = filename
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocusUp()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocusDown()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left"))):
		m.decrementValue()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("right"))):
		m.incrementValue()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		// Project the term sheet with the edited assumptions
		return m, m.projectTermSheet()

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		// Reset to the values from the loaded file
		m.resetToPristine()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		// Save modified assumptions back to the deal file
		if m.modified && m.deal != nil {
			return m, m.saveDeal()
		}
		return m, nil
	}

	return m, nil
}

// moveFocusUp moves focus to previous slider
func (m *ParametersModel) moveFocusUp() {
	if m.focusedSlider > 0 {
		m.sliders[m.focusedSlider].SetFocused(false)
		m.focusedSlider--
		m.sliders[m.focusedSlider].SetFocused(true)
	}
}

// moveFocusDown moves focus to next slider
func (m *ParametersModel) moveFocusDown() {
	if m.focusedSlider < len(m.sliders)-1 {
		m.sliders[m.focusedSlider].SetFocused(false)
		m.focusedSlider++
		m.sliders[m.focusedSlider].SetFocused(true)
	}
}

// incrementValue increases the focused slider's value
func (m *ParametersModel) incrementValue() {
	if m.focusedSlider < len(m.sliders) {
		m.sliders[m.focusedSlider].Increment()
		m.markModified()
		m.applyChanges()
	}
}

// decrementValue decreases the focused slider's value
func (m *ParametersModel) decrementValue() {
	if m.focusedSlider < len(m.sliders) {
		m.sliders[m.focusedSlider].Decrement()
		m.markModified()
		m.applyChanges()
	}
}

func (m *ParametersModel) markModified() {
	m.modified = true
	m.savedTo = ""
}

// applyChanges applies slider values back to the shared deal
func (m *ParametersModel) applyChanges() {
	if m.deal == nil || m.deal.TermSheet == nil {
		return
	}

	for i, slider := range m.sliders {
		switch m.params[i] {
		case paramInterestRate:
			m.deal.Loan.InterestRatePct = decimal.NewFromFloat(slider.Value)
		case paramPreferredReturn:
			m.deal.PreferredReturnPct = decimal.NewFromFloat(slider.Value)
		case paramNOIGrowth:
			growth := decimal.NewFromFloat(slider.Value)
			m.deal.TermSheet.NOIGrowthPct = &growth
		case paramExitCapRate:
			m.deal.TermSheet.ExitCapRatePct = decimal.NewFromFloat(slider.Value)
		case paramHoldPeriod:
			m.deal.TermSheet.TermYears = int(slider.Value)
		}
	}
}

// resetToPristine restores the assumptions from the loaded file
func (m *ParametersModel) resetToPristine() {
	if m.deal == nil || m.pristine == nil {
		return
	}

	m.deal.Loan.InterestRatePct = m.pristine.Loan.InterestRatePct
	m.deal.PreferredReturnPct = m.pristine.PreferredReturnPct
	if m.deal.TermSheet != nil && m.pristine.TermSheet != nil {
		m.deal.TermSheet.TermYears = m.pristine.TermSheet.TermYears
		m.deal.TermSheet.ExitCapRatePct = m.pristine.TermSheet.ExitCapRatePct
		if m.pristine.TermSheet.NOIGrowthPct != nil {
			growth := *m.pristine.TermSheet.NOIGrowthPct
			m.deal.TermSheet.NOIGrowthPct = &growth
		} else {
			m.deal.TermSheet.NOIGrowthPct = nil
		}
	}

	m.modified = false
	m.savedTo = ""
	m.buildSliders()
}

// projectTermSheet triggers a term sheet projection
func (m *ParametersModel) projectTermSheet() tea.Cmd {
	if m.deal == nil {
		return nil
	}

	return func() tea.Msg {
		return tuimsg.ProjectionStartedMsg{}
	}
}

// saveDeal triggers a save of the edited deal
func (m *ParametersModel) saveDeal() tea.Cmd {
	if m.deal == nil {
		return nil
	}

	return func() tea.Msg {
		return tuimsg.SaveDealMsg{
			Deal:     m.deal,
			Filename: "", // Will be filled in by main model with the deal path
		}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if m.deal == nil || len(m.sliders) == 0 {
		return renderNoTermSheetState()
	}

	header := renderParameterHeader(m.deal.DealName)
	slidersView := renderSliders(m.sliders)
	status := renderParameterStatus(m.modified, m.savedTo)
	help := renderParameterHelp()

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		slidersView,
		"",
		status,
		"",
		help,
	)

	return content
}

// renderNoTermSheetState renders empty state
func renderNoTermSheetState() string {
	return `No adjustable assumptions.

This deal has no term_sheet section, so there is nothing to project.
Add term sheet assumptions to the deal file to edit them here.

Press ESC to return to home.`
}

// renderParameterHeader renders the scene title and deal name
func renderParameterHeader(dealName string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Edit Assumptions"),
		subtitleStyle.Render(dealName),
	)
}

// renderSliders renders all parameter sliders
func renderSliders(sliders []*components.ParameterSlider) string {
	if len(sliders) == 0 {
		return "No adjustable assumptions for this deal."
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(2, 4).
		Width(70)

	var rendered []string
	for _, slider := range sliders {
		rendered = append(rendered, slider.Render())
		rendered = append(rendered, "") // Spacer
	}

	content := strings.Join(rendered, "\n")
	return containerStyle.Render(content)
}

// renderParameterStatus renders modification status
func renderParameterStatus(modified bool, savedTo string) string {
	if savedTo != "" {
		savedStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorSuccess).
			Bold(true)
		return savedStyle.Render(fmt.Sprintf("✓ Saved to %s", savedTo))
	}

	if !modified {
		return ""
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Bold(true)

	return statusStyle.Render("⚠ Modified - Press Enter to project or 'r' to reset")
}

// renderParameterHelp renders keyboard shortcuts
func renderParameterHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted)

	return helpStyle.Render("↑/↓ navigate • ←/→ adjust • Enter project • r reset • Ctrl+S save • ESC back")
}
