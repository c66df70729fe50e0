package compare

import (
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one promote structure run over the deal's cash
// flows, with the metrics used to judge it against the base structure.
type ComparisonResult struct {
	StructureName string `json:"structureName"`
	Description   string `json:"description,omitempty"`
	Result        *domain.WaterfallResult

	// Key Metrics
	LPIRRPct         *decimal.Decimal `json:"lpIrrPct,omitempty"`
	GPIRRPct         *decimal.Decimal `json:"gpIrrPct,omitempty"`
	LPEquityMultiple decimal.Decimal  `json:"lpEquityMultiple"`
	GPEquityMultiple decimal.Decimal  `json:"gpEquityMultiple"`
	TotalLP          decimal.Decimal  `json:"totalLp"`
	TotalGP          decimal.Decimal  `json:"totalGp"`
	GPProfitSharePct decimal.Decimal  `json:"gpProfitSharePct"`

	// Comparison to Base
	LPIRRDiffFromBase *decimal.Decimal `json:"lpIrrDiffFromBase,omitempty"`
	LPDiffFromBase    decimal.Decimal  `json:"lpDiffFromBase"`
	GPDiffFromBase    decimal.Decimal  `json:"gpDiffFromBase"`
	LPMultipleDiff    decimal.Decimal  `json:"lpMultipleDiff"`
}

// ComparisonSet represents a collection of structure comparisons over the
// same deal.
type ComparisonSet struct {
	DealName           string             `json:"dealName"`
	BaseStructureName  string             `json:"baseStructureName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts comparison metrics from waterfall results.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator.
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the standalone metrics for one structure's run.
func (mc *MetricsCalculator) CalculateMetrics(result *domain.WaterfallResult) ComparisonResult {
	summary := result.Summary
	out := ComparisonResult{
		StructureName:    result.StructureName,
		Result:           result,
		LPIRRPct:         summary.LPIRRPct,
		GPIRRPct:         summary.GPIRRPct,
		LPEquityMultiple: summary.LPEquityMultiple,
		GPEquityMultiple: summary.GPEquityMultiple,
		TotalLP:          summary.TotalLP,
		TotalGP:          summary.TotalGP,
	}

	if !summary.TotalDistributed.IsZero() {
		out.GPProfitSharePct = summary.TotalGP.Div(summary.TotalDistributed).Mul(decimal.NewFromInt(100))
	}

	return out
}

// CalculateComparison fills in the deltas between a structure and the base.
// IRR deltas are only meaningful when both sides solved one.
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.LPDiffFromBase = alt.TotalLP.Sub(base.TotalLP)
	alt.GPDiffFromBase = alt.TotalGP.Sub(base.TotalGP)
	alt.LPMultipleDiff = alt.LPEquityMultiple.Sub(base.LPEquityMultiple)

	if alt.LPIRRPct != nil && base.LPIRRPct != nil {
		diff := alt.LPIRRPct.Sub(*base.LPIRRPct)
		alt.LPIRRDiffFromBase = &diff
	}

	return alt
}

// GenerateRecommendations summarizes which structure serves which side best.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find the structure with the best LP return.
	bestLP := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LPIRRPct == nil {
			continue
		}
		if bestLP.LPIRRPct == nil || alt.LPIRRPct.GreaterThan(*bestLP.LPIRRPct) {
			bestLP = alt
		}
	}

	if bestLP != compSet.BaseResult && bestLP.LPIRRDiffFromBase != nil {
		recommendations = append(recommendations,
			"Best LP return: "+bestLP.StructureName+" lifts the LP IRR by "+
				bestLP.LPIRRDiffFromBase.StringFixed(2)+" points over "+compSet.BaseStructureName)
	} else if bestLP == compSet.BaseResult && bestLP.LPIRRPct != nil {
		recommendations = append(recommendations,
			"Best LP return: "+compSet.BaseStructureName+" already leads the structures compared")
	}

	// Find the structure that pays the sponsor the most.
	bestGP := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalGP.GreaterThan(bestGP.TotalGP) {
			bestGP = alt
		}
	}

	if bestGP != compSet.BaseResult {
		gpGain := bestGP.TotalGP.Sub(compSet.BaseResult.TotalGP)
		recommendations = append(recommendations,
			"Most GP-favorable: "+bestGP.StructureName+" pays the sponsor $"+
				gpGain.StringFixed(0)+" more than "+compSet.BaseStructureName)
	}

	return recommendations
}
