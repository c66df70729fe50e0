package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LaxBloxBoy2/crego/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	// Root-level messages
	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case DealLoadedMsg:
		m.deal = msg.Deal
		m.loading = false
		m.populateScenes()
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetWaterfall(msg.StructureName, msg.Result)
		return m, navigateCmd(SceneResults)

	case ProjectionCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetProjection(msg.Projection)
		return m, navigateCmd(SceneResults)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			m.compareModel.ClearResults()
			return m, nil
		}
		m.compareModel.SetResults(msg.Set)
		return m, nil

	case DebtSizingCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.debtModel.SetResult(msg.Result)
		return m, nil

	case SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.parametersModel.MarkSaved(msg.Filename)
		return m, nil

	// Scene-level messages
	case tuimsg.StructureSelectedMsg:
		m.selectedStructure = msg.StructureName
		m.loading = true
		m.loadingMessage = "Running waterfall distribution..."
		return m, runWaterfallCmd(m.engine, m.deal, msg.StructureName)

	case tuimsg.ProjectionStartedMsg:
		m.loading = true
		m.loadingMessage = "Projecting term sheet..."
		return m, projectTermSheetCmd(m.projector, m.deal, m.selectedStructure)

	case tuimsg.ComparisonStartedMsg:
		m.loading = true
		m.loadingMessage = "Comparing promote structures..."
		return m, compareStructuresCmd(m.engine, m.deal, msg.StructureNames)

	case tuimsg.DebtSizingStartedMsg:
		return m, sizeDebtCmd(m.deal, msg.NOI, msg.DSCRTarget)

	case tuimsg.SaveDealMsg:
		filename := msg.Filename
		if filename == "" {
			filename = m.dealPath
		}
		return m, saveDealCmd(msg.Deal, filename)

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// navigateCmd emits a scene change.
func navigateCmd(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// populateScenes distributes the loaded deal to the scene models.
func (m *Model) populateScenes() {
	if m.deal == nil {
		return
	}
	m.homeModel.SetDeal(m.deal)
	m.structuresModel.SetStructures(m.deal.Structures)
	m.parametersModel.SetDeal(m.deal)
	m.compareModel.SetStructures(m.deal.Structures)
	m.debtModel.SetDeal(m.deal)
	m.resizeScenes()
}

// resizeScenes propagates the terminal size to every scene.
func (m *Model) resizeScenes() {
	m.homeModel.SetSize(m.width, m.height)
	m.structuresModel.SetSize(m.width, m.height)
	m.parametersModel.SetSize(m.width, m.height)
	m.compareModel.SetSize(m.width, m.height)
	m.debtModel.SetSize(m.width, m.height)
	m.resultsModel.SetSize(m.width, m.height)
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, even mid-edit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error display.
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// While a text input has focus, every other key belongs to the scene.
	if m.currentScene == SceneDebt && m.debtModel.IsEditing() {
		return m.updateCurrentScene(msg)
	}

	// Global keyboard shortcuts
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m, navigateCmd(SceneHelp)
		}

	case "esc":
		if m.currentScene != SceneHome {
			target := SceneHome
			if m.previousScene != m.currentScene && m.previousScene != SceneHelp {
				target = m.previousScene
			}
			return m, navigateCmd(target)
		}

	case "h":
		if m.currentScene != SceneHome {
			return m, navigateCmd(SceneHome)
		}

	case "s":
		if m.currentScene != SceneStructures {
			return m, navigateCmd(SceneStructures)
		}

	case "p":
		if m.currentScene != SceneParameters {
			return m, navigateCmd(SceneParameters)
		}

	case "c":
		if m.currentScene != SceneCompare {
			return m, navigateCmd(SceneCompare)
		}

	case "d":
		if m.currentScene != SceneDebt {
			return m, navigateCmd(SceneDebt)
		}

	case "r":
		if m.currentScene != SceneResults {
			return m, navigateCmd(SceneResults)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates a message to the current scene's model.
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneStructures:
		m.structuresModel, cmd = m.structuresModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneDebt:
		m.debtModel, cmd = m.debtModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}

	return m, cmd
}
