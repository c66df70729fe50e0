package domain

import "github.com/shopspring/decimal"

// TermSheetAssumptions represents the operating assumptions a deal file
// carries for term sheet projection.
type TermSheetAssumptions struct {
	TermYears      int              `yaml:"term_years" json:"term_years"`
	InitialNOI     decimal.Decimal  `yaml:"initial_noi" json:"initial_noi"`
	NOIGrowthPct   *decimal.Decimal `yaml:"noi_growth_pct,omitempty" json:"noi_growth_pct,omitempty"`
	ExitCapRatePct decimal.Decimal  `yaml:"exit_cap_rate_pct" json:"exit_cap_rate_pct"`
}

// DebtSizingAssumptions represents the inputs for sizing the deal's maximum
// supportable loan.
type DebtSizingAssumptions struct {
	NOI        decimal.Decimal `yaml:"noi" json:"noi"`
	DSCRTarget decimal.Decimal `yaml:"dscr_target" json:"dscr_target"`
}

// DealConfig represents a complete deal file: capital stack, promote
// ladders, an observed or projected cash-flow series, and optional term
// sheet and debt sizing assumptions.
type DealConfig struct {
	DealName           string                 `yaml:"deal_name" json:"deal_name"`
	Loan               LoanTerms              `yaml:"loan" json:"loan"`
	EquityInvestment   decimal.Decimal        `yaml:"equity_investment" json:"equity_investment"`
	EquitySplit        EquitySplit            `yaml:"equity_split,omitempty" json:"equity_split,omitempty"`
	PreferredReturnPct decimal.Decimal        `yaml:"preferred_return_pct" json:"preferred_return_pct"`
	Structures         []PromoteStructure     `yaml:"promote_structures" json:"promote_structures"`
	CashFlows          CashFlowSeries         `yaml:"cash_flows,omitempty" json:"cash_flows,omitempty"`
	TermSheet          *TermSheetAssumptions  `yaml:"term_sheet,omitempty" json:"term_sheet,omitempty"`
	DebtSizing         *DebtSizingAssumptions `yaml:"debt_sizing,omitempty" json:"debt_sizing,omitempty"`
}

// DeepCopy returns an independent copy of the deal, safe for what-if
// mutation without touching the parsed file.
func (dc *DealConfig) DeepCopy() *DealConfig {
	out := *dc
	out.Structures = make([]PromoteStructure, len(dc.Structures))
	for i, structure := range dc.Structures {
		copied := structure
		copied.Tiers = make([]WaterfallTier, len(structure.Tiers))
		copy(copied.Tiers, structure.Tiers)
		out.Structures[i] = copied
	}
	out.CashFlows = dc.CashFlows.DeepCopy()
	if dc.TermSheet != nil {
		ts := *dc.TermSheet
		if dc.TermSheet.NOIGrowthPct != nil {
			growth := *dc.TermSheet.NOIGrowthPct
			ts.NOIGrowthPct = &growth
		}
		out.TermSheet = &ts
	}
	if dc.DebtSizing != nil {
		ds := *dc.DebtSizing
		out.DebtSizing = &ds
	}
	return &out
}

// Split returns the configured equity split or the documented 50/50 default.
func (dc *DealConfig) Split() EquitySplit {
	if dc.EquitySplit.IsZero() {
		return DefaultEquitySplit()
	}
	return dc.EquitySplit
}

// StructureByName finds a promote structure by name. An empty name selects
// the first structure in the file.
func (dc *DealConfig) StructureByName(name string) (PromoteStructure, error) {
	if len(dc.Structures) == 0 {
		return PromoteStructure{}, NewInvalidInput("select_structure", "promote_structures",
			"deal has no promote structures")
	}
	if name == "" {
		return dc.Structures[0], nil
	}
	for _, structure := range dc.Structures {
		if structure.Name == name {
			return structure, nil
		}
	}
	return PromoteStructure{}, NewInvalidInput("select_structure", "promote_structures",
		"no structure named "+name)
}

// BuildTermSheetInput assembles the projection input for the given promote
// structure from the deal's term sheet assumptions.
func (dc *DealConfig) BuildTermSheetInput(structure PromoteStructure) (TermSheetInput, error) {
	if dc.TermSheet == nil {
		return TermSheetInput{}, NewInvalidInput("build_term_sheet", "term_sheet",
			"deal has no term sheet assumptions")
	}
	return TermSheetInput{
		DealName:           dc.DealName,
		Loan:               dc.Loan,
		EquityInvestment:   dc.EquityInvestment,
		EquitySplit:        dc.EquitySplit,
		PreferredReturnPct: dc.PreferredReturnPct,
		Structure:          structure,
		TermYears:          dc.TermSheet.TermYears,
		InitialNOI:         dc.TermSheet.InitialNOI,
		NOIGrowthPct:       dc.TermSheet.NOIGrowthPct,
		ExitCapRatePct:     dc.TermSheet.ExitCapRatePct,
	}, nil
}
