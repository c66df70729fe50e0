// Package tuimsg holds the messages scenes send up to the root model. It
// exists so scene packages never import the tui package itself, which would
// be an import cycle.
package tuimsg

import (
	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// StructureSelectedMsg signals a promote structure has been chosen for a
// waterfall run.
type StructureSelectedMsg struct {
	StructureName string
}

// ProjectionStartedMsg asks the root model to project the term sheet for the
// currently selected structure using the deal's (possibly edited)
// assumptions.
type ProjectionStartedMsg struct{}

// ComparisonStartedMsg signals a comparison across promote structures has
// begun. The first name is treated as the base.
type ComparisonStartedMsg struct {
	StructureNames []string
}

// DebtSizingStartedMsg carries the sizing inputs entered in the debt scene.
// Rate and amortization come from the deal's loan terms.
type DebtSizingStartedMsg struct {
	NOI        decimal.Decimal
	DSCRTarget decimal.Decimal
}

// SaveDealMsg signals a request to save the edited deal. Filename is filled
// in by the root model with the path the deal was loaded from.
type SaveDealMsg struct {
	Deal     *DealConfig
	Filename string
}

// ErrorMsg surfaces a scene-level error to the root model.
type ErrorMsg struct {
	Err error
}

// DealConfig is re-exported from domain so scenes and the root model agree
// on the message payload type.
type DealConfig = domain.DealConfig
