package waterfall

import (
	"fmt"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Analyzer sweeps deal assumptions through the term sheet projector one
// parameter at a time and ranks them by how hard they move the investor IRR.
type Analyzer struct {
	TermSheet *TermSheet
	Logger    zerolog.Logger
}

// NewAnalyzer creates an analyzer over a default projector.
func NewAnalyzer() *Analyzer {
	return &Analyzer{TermSheet: NewTermSheet(), Logger: zerolog.Nop()}
}

// Run projects the base input once, then re-projects it at each step of each
// parameter sweep. The swing between the best and worst LP IRR a parameter
// produces is its sensitivity score.
func (a *Analyzer) Run(base domain.TermSheetInput, params []domain.SensitivityParameter) (*domain.SensitivityReport, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, domain.NewInvalidInput("run_sensitivity", "parameters",
			"at least one parameter is required")
	}

	baseProjection, err := a.TermSheet.Project(base)
	if err != nil {
		return nil, fmt.Errorf("base projection: %w", err)
	}

	report := &domain.SensitivityReport{
		DealName: base.DealName,
		Analyses: make([]domain.SensitivityAnalysis, 0, len(params)),
		Summary: domain.SensitivitySummary{
			SensitivityScores: make(map[string]decimal.Decimal, len(params)),
		},
	}

	bestSwing := decimal.NewFromInt(-1)
	for _, param := range params {
		analysis, err := a.sweep(base, param, baseProjection.Summary.LPIRRPct)
		if err != nil {
			return nil, err
		}
		report.Analyses = append(report.Analyses, analysis)
		report.Summary.SensitivityScores[param.Name] = analysis.IRRSwingPct
		if analysis.IRRSwingPct.GreaterThan(bestSwing) {
			bestSwing = analysis.IRRSwingPct
			report.Summary.MostSensitiveParameter = param.Name
		}
	}

	report.Summary.RiskLevel = report.Summary.DetermineRiskLevel()
	report.Summary.Recommendations = report.Summary.GenerateRecommendations()
	return report, nil
}

// sweep evaluates one parameter across its range.
func (a *Analyzer) sweep(base domain.TermSheetInput, param domain.SensitivityParameter, baseLPIRR *decimal.Decimal) (domain.SensitivityAnalysis, error) {
	if err := param.Validate(); err != nil {
		return domain.SensitivityAnalysis{}, err
	}

	current, err := currentValue(base, param.Name)
	if err != nil {
		return domain.SensitivityAnalysis{}, err
	}
	param.BaseValue = current

	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	steps := make([]domain.SensitivityStep, 0, param.Steps)

	var minIRR, maxIRR *decimal.Decimal
	for i := 0; i < param.Steps; i++ {
		value := param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		modified, err := applyParameter(base, param.Name, value)
		if err != nil {
			return domain.SensitivityAnalysis{}, err
		}

		projection, err := a.TermSheet.Project(modified)
		if err != nil {
			return domain.SensitivityAnalysis{}, fmt.Errorf("%s=%s: %w", param.Name, value.String(), err)
		}

		a.Logger.Debug().
			Str("parameter", param.Name).
			Str("value", value.String()).
			Msg("sensitivity step projected")

		steps = append(steps, domain.SensitivityStep{
			ParameterValue:   value,
			LPIRRPct:         projection.Summary.LPIRRPct,
			GPIRRPct:         projection.Summary.GPIRRPct,
			LPEquityMultiple: projection.Summary.LPEquityMultiple,
			GPEquityMultiple: projection.Summary.GPEquityMultiple,
			NetSaleProceeds:  projection.NetSaleProceeds,
		})

		if irr := projection.Summary.LPIRRPct; irr != nil {
			if minIRR == nil || irr.LessThan(*minIRR) {
				minIRR = irr
			}
			if maxIRR == nil || irr.GreaterThan(*maxIRR) {
				maxIRR = irr
			}
		}
	}

	swing := decimal.Zero
	if minIRR != nil && maxIRR != nil {
		swing = maxIRR.Sub(*minIRR)
	}

	return domain.SensitivityAnalysis{
		DealName:     base.DealName,
		Parameter:    param,
		Steps:        steps,
		BaseLPIRRPct: baseLPIRR,
		IRRSwingPct:  swing,
	}, nil
}

// applyParameter returns a copy of the input with one assumption replaced.
func applyParameter(base domain.TermSheetInput, name string, value decimal.Decimal) (domain.TermSheetInput, error) {
	modified := base
	switch name {
	case "exit_cap_rate_pct":
		modified.ExitCapRatePct = value
	case "noi_growth_pct":
		growth := value
		modified.NOIGrowthPct = &growth
	case "interest_rate_pct":
		modified.Loan.InterestRatePct = value
	case "preferred_return_pct":
		modified.PreferredReturnPct = value
	case "initial_noi":
		modified.InitialNOI = value
	case "equity_investment":
		modified.EquityInvestment = value
	default:
		return domain.TermSheetInput{}, domain.NewInvalidInput("run_sensitivity", "parameter",
			"unsupported sweep parameter "+name)
	}
	return modified, nil
}

// currentValue reads the assumption the sweep will replace, so the analysis
// reports the deal's actual base rather than a generic default.
func currentValue(base domain.TermSheetInput, name string) (decimal.Decimal, error) {
	switch name {
	case "exit_cap_rate_pct":
		return base.ExitCapRatePct, nil
	case "noi_growth_pct":
		return base.GrowthPct(), nil
	case "interest_rate_pct":
		return base.Loan.InterestRatePct, nil
	case "preferred_return_pct":
		return base.PreferredReturnPct, nil
	case "initial_noi":
		return base.InitialNOI, nil
	case "equity_investment":
		return base.EquityInvestment, nil
	default:
		return decimal.Zero, domain.NewInvalidInput("run_sensitivity", "parameter",
			"unsupported sweep parameter "+name)
	}
}
