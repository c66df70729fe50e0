package tui

import (
	"github.com/LaxBloxBoy2/crego/internal/compare"
	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// Scene represents the different screens in the TUI.
type Scene int

const (
	SceneHome Scene = iota
	SceneStructures
	SceneParameters
	SceneCompare
	SceneDebt
	SceneResults
	SceneHelp
)

// String returns a human-readable name for a scene.
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneStructures:
		return "Structures"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneDebt:
		return "Debt Sizing"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle. Scenes communicate upward
// through tuimsg; these are the messages the root model's own commands emit.

// NavigateMsg switches to a different scene.
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}

// DealLoadedMsg signals the deal file has been parsed and validated.
type DealLoadedMsg struct {
	Deal *domain.DealConfig
}

// CalculationCompleteMsg signals a waterfall run has finished.
type CalculationCompleteMsg struct {
	StructureName string
	Result        *domain.WaterfallResult
	Err           error
}

// ProjectionCompleteMsg signals a term sheet projection has finished.
type ProjectionCompleteMsg struct {
	Projection *domain.TermSheetProjection
	Err        error
}

// ComparisonCompleteMsg signals a structure comparison has finished.
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// DebtSizingCompleteMsg signals a debt sizing computation has finished.
type DebtSizingCompleteMsg struct {
	Result *domain.DebtSizingResult
	Err    error
}

// SaveCompleteMsg signals a deal save has finished.
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
