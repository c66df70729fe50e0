package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application.
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneStructures:
		content = m.structuresModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneDebt:
		content = m.debtModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar, status bar, and container.
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)
	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb.
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("CREGO - CRE Deal Returns")

	breadcrumb := m.currentScene.String()
	if m.selectedStructure != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedStructure)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom bar with keyboard shortcuts and the
// loaded deal's name.
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("s", "structures"),
		formatShortcut("p", "parameters"),
		formatShortcut("c", "compare"),
		formatShortcut("d", "debt"),
		formatShortcut("r", "results"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.deal != nil {
		dealName := SubtitleStyle.Render(m.deal.DealName)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(dealName) - 4
		statusText = statusText + strings.Repeat(" ", max(0, width)) + dealName
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description.
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message.
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(fmt.Sprintf("⠋ %s", message))
	return m.renderApp(content)
}

// renderError renders an error message.
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	helpText := `
CREGO - CRE Deal Returns Explorer

KEYBOARD SHORTCUTS:
  h        Navigate to Home
  s        Browse promote structures
  p        Edit underwriting parameters
  c        Compare promote structures
  d        Size the supportable debt
  r        View calculation results
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

NAVIGATION:
  Use arrow keys (or j/k) to move through lists
  Enter to select or run
  Space to toggle selections in Compare

EDITING:
  Arrow keys adjust parameter sliders
  Type numbers into debt sizing inputs
  Ctrl+S saves edited assumptions back to the deal file
`

	return BorderStyle.Render(helpText)
}
