// Package tui is an interactive deal explorer: browse promote structures,
// adjust underwriting assumptions, run waterfalls and term sheet
// projections, and size debt, all without leaving the terminal.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/compare"
	"github.com/LaxBloxBoy2/crego/internal/config"
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/finance"
	"github.com/LaxBloxBoy2/crego/internal/output"
	"github.com/LaxBloxBoy2/crego/internal/tui/scenes"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

// Model represents the entire application state.
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Deal data
	dealPath string
	deal     *domain.DealConfig

	// Engines
	engine    *waterfall.Engine
	projector *waterfall.TermSheet

	// Current selection
	selectedStructure string

	// Scene models
	homeModel       *scenes.HomeModel
	structuresModel *scenes.StructuresModel
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	debtModel       *scenes.DebtModel
	resultsModel    *scenes.ResultsModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates the application model for the given deal file.
func NewModel(dealPath string) Model {
	return Model{
		currentScene:    SceneHome,
		dealPath:        dealPath,
		engine:          waterfall.NewEngine(),
		projector:       waterfall.NewTermSheet(),
		homeModel:       scenes.NewHomeModel(),
		structuresModel: scenes.NewStructuresModel(),
		parametersModel: scenes.NewParametersModel(),
		compareModel:    scenes.NewCompareModel(),
		debtModel:       scenes.NewDebtModel(),
		resultsModel:    scenes.NewResultsModel(),
		width:           80,
		height:          24,
	}
}

// Init loads the deal file (required by the tea.Model interface).
func (m Model) Init() tea.Cmd {
	return loadDealCmd(m.dealPath)
}

// loadDealCmd parses and validates the deal file.
func loadDealCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		deal, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DealLoadedMsg{Deal: deal}
	}
}

// runWaterfallCmd distributes the deal's cash flows through the named
// structure.
func runWaterfallCmd(engine *waterfall.Engine, deal *domain.DealConfig, structureName string) tea.Cmd {
	return func() tea.Msg {
		structure, err := deal.StructureByName(structureName)
		if err != nil {
			return CalculationCompleteMsg{StructureName: structureName, Err: err}
		}

		result, err := engine.Run(structure, deal.CashFlows, deal.Split())
		return CalculationCompleteMsg{
			StructureName: structure.Name,
			Result:        result,
			Err:           err,
		}
	}
}

// projectTermSheetCmd projects the deal's term sheet assumptions under the
// named structure.
func projectTermSheetCmd(projector *waterfall.TermSheet, deal *domain.DealConfig, structureName string) tea.Cmd {
	return func() tea.Msg {
		structure, err := deal.StructureByName(structureName)
		if err != nil {
			return ProjectionCompleteMsg{Err: err}
		}

		input, err := deal.BuildTermSheetInput(structure)
		if err != nil {
			return ProjectionCompleteMsg{Err: err}
		}

		projection, err := projector.Project(input)
		return ProjectionCompleteMsg{Projection: projection, Err: err}
	}
}

// compareStructuresCmd runs the deal under each selected structure, treating
// the first as the base.
func compareStructuresCmd(engine *waterfall.Engine, deal *domain.DealConfig, names []string) tea.Cmd {
	return func() tea.Msg {
		options := compare.CompareOptions{
			BaseStructureName: names[0],
			AlternativeNames:  names[1:],
		}

		set, err := compare.NewCompareEngine(engine).Compare(deal, options)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// sizeDebtCmd sizes the maximum supportable loan from the entered NOI and
// coverage target, using the deal's loan rate and amortization.
func sizeDebtCmd(deal *domain.DealConfig, noi, dscrTarget decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		result, err := finance.SizeDebt(noi, deal.Loan.AnnualRate(), dscrTarget, deal.Loan.AmortizationYears)
		return DebtSizingCompleteMsg{Result: result, Err: err}
	}
}

// saveDealCmd writes the edited deal back to disk.
func saveDealCmd(deal *domain.DealConfig, filename string) tea.Cmd {
	return func() tea.Msg {
		err := output.SaveDeal(deal, filename)
		return SaveCompleteMsg{Filename: filename, Err: err}
	}
}
