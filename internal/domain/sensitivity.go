package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents one deal assumption to sweep in
// sensitivity analysis. Values are boundary percentages or dollars
// depending on Unit.
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "dollars"
	Description string          `yaml:"description" json:"description"`
}

// Validate checks that the sweep range is usable.
func (p SensitivityParameter) Validate() error {
	if p.Name == "" {
		return NewInvalidInput("validate_sensitivity", "name", "parameter name is required")
	}
	if p.Steps < 2 {
		return NewInvalidInput("validate_sensitivity", "steps", "sweep needs at least two steps")
	}
	if p.MinValue.GreaterThan(p.MaxValue) {
		return NewInvalidInput("validate_sensitivity", "min_value",
			"min_value must not exceed max_value")
	}
	return nil
}

// SensitivityStep represents the deal outcome at one swept parameter value.
type SensitivityStep struct {
	ParameterValue   decimal.Decimal  `json:"parameterValue"`
	LPIRRPct         *decimal.Decimal `json:"lpIrrPct,omitempty"`
	GPIRRPct         *decimal.Decimal `json:"gpIrrPct,omitempty"`
	LPEquityMultiple decimal.Decimal  `json:"lpEquityMultiple"`
	GPEquityMultiple decimal.Decimal  `json:"gpEquityMultiple"`
	NetSaleProceeds  decimal.Decimal  `json:"netSaleProceeds"`
}

// SensitivityAnalysis represents a completed single-parameter sweep.
// IRRSwingPct is the spread between the best and worst LP IRR observed,
// the score used to rank parameters against each other.
type SensitivityAnalysis struct {
	DealName     string               `json:"dealName"`
	Parameter    SensitivityParameter `json:"parameter"`
	Steps        []SensitivityStep    `json:"steps"`
	BaseLPIRRPct *decimal.Decimal     `json:"baseLpIrrPct,omitempty"`
	IRRSwingPct  decimal.Decimal      `json:"irrSwingPct"`
}

// SensitivityReport bundles the sweeps for every analyzed parameter with a
// ranking summary.
type SensitivityReport struct {
	DealName string                `json:"dealName"`
	Analyses []SensitivityAnalysis `json:"analyses"`
	Summary  SensitivitySummary    `json:"summary"`
}

// SensitivitySummary provides the cross-parameter ranking.
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// Common sweep definitions for deal assumptions
var (
	ExitCapRateParam = SensitivityParameter{
		Name:        "exit_cap_rate_pct",
		MinValue:    decimal.NewFromFloat(4.5),
		MaxValue:    decimal.NewFromFloat(7.5),
		Steps:       7,
		BaseValue:   decimal.NewFromFloat(5.5),
		Unit:        "percent",
		Description: "Capitalization rate applied to final-year NOI at sale",
	}

	NOIGrowthParam = SensitivityParameter{
		Name:        "noi_growth_pct",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(6),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(3),
		Unit:        "percent",
		Description: "Annual net operating income growth",
	}

	InterestRateParam = SensitivityParameter{
		Name:        "interest_rate_pct",
		MinValue:    decimal.NewFromInt(4),
		MaxValue:    decimal.NewFromInt(9),
		Steps:       6,
		BaseValue:   decimal.NewFromFloat(6.5),
		Unit:        "percent",
		Description: "Loan interest rate",
	}

	PreferredReturnParam = SensitivityParameter{
		Name:        "preferred_return_pct",
		MinValue:    decimal.NewFromInt(6),
		MaxValue:    decimal.NewFromInt(10),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(8),
		Unit:        "percent",
		Description: "Preferred return on invested equity",
	}
)

// GetCommonParameters returns the standard deal assumption sweeps.
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		ExitCapRateParam,
		NOIGrowthParam,
		InterestRateParam,
		PreferredReturnParam,
	}
}

// DetermineRiskLevel grades the deal by the largest IRR swing any single
// assumption produced.
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	if maxScore.LessThan(decimal.NewFromInt(2)) {
		return "LOW"
	} else if maxScore.LessThan(decimal.NewFromInt(5)) {
		return "MEDIUM"
	} else if maxScore.LessThan(decimal.NewFromInt(10)) {
		return "HIGH"
	}
	return "CRITICAL"
}

// GenerateRecommendations produces guidance based on which assumption moves
// returns the most.
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	riskLevel := ss.DetermineRiskLevel()

	switch riskLevel {
	case "LOW":
		recommendations = append(recommendations, "Returns are robust to assumption changes")
	case "MEDIUM":
		recommendations = append(recommendations, "Monitor the most sensitive assumptions through the hold period")
	case "HIGH":
		recommendations = append(recommendations, "Returns swing materially with assumptions; stress-test before committing")
	case "CRITICAL":
		recommendations = append(recommendations, "Returns are dominated by assumption risk; underwrite conservatively")
	}

	if ss.MostSensitiveParameter != "" {
		switch ss.MostSensitiveParameter {
		case "exit_cap_rate_pct":
			recommendations = append(recommendations, "Exit cap rate drives the outcome; consider longer hold flexibility")
		case "noi_growth_pct":
			recommendations = append(recommendations, "NOI growth drives the outcome; verify rent roll and market comps")
		case "interest_rate_pct":
			recommendations = append(recommendations, "Financing cost drives the outcome; consider rate protection")
		case "preferred_return_pct":
			recommendations = append(recommendations, "Preferred return terms drive the outcome; revisit the capital stack")
		}
	}

	return recommendations
}
