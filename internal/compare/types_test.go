package compare

import (
	"testing"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics(&domain.WaterfallResult{
		StructureName: "institutional-promote",
		StrategyUsed:  "trailing_irr",
		Summary: domain.ReturnsSummary{
			TotalDistributed: decimal.NewFromInt(1000000),
			TotalGP:          decimal.NewFromInt(250000),
			TotalLP:          decimal.NewFromInt(750000),
			LPIRRPct:         pctPtr(12.5),
			GPIRRPct:         pctPtr(18.25),
			LPEquityMultiple: decimal.NewFromFloat(1.8),
			GPEquityMultiple: decimal.NewFromFloat(2.4),
		},
	})

	if result.StructureName != "institutional-promote" {
		t.Errorf("Expected structure name 'institutional-promote', got %s", result.StructureName)
	}

	if result.LPIRRPct == nil || !result.LPIRRPct.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("Expected LP IRR 12.5, got %v", result.LPIRRPct)
	}

	if !result.TotalLP.Equal(decimal.NewFromInt(750000)) {
		t.Errorf("Expected total LP 750000, got %s", result.TotalLP.String())
	}

	// GP share of profits: 250000 / 1000000 * 100 = 25
	if !result.GPProfitSharePct.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected GP profit share 25, got %s", result.GPProfitSharePct.String())
	}
}

func TestMetricsCalculator_CalculateMetrics_NothingDistributed(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics(&domain.WaterfallResult{
		StructureName: "dry-hole",
		Summary:       domain.ReturnsSummary{},
	})

	if !result.GPProfitSharePct.IsZero() {
		t.Errorf("Expected zero GP profit share with nothing distributed, got %s", result.GPProfitSharePct.String())
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		StructureName:    "straight-split",
		TotalLP:          decimal.NewFromInt(750000),
		TotalGP:          decimal.NewFromInt(250000),
		LPIRRPct:         pctPtr(12.5),
		LPEquityMultiple: decimal.NewFromFloat(1.8),
	}

	alt := ComparisonResult{
		StructureName:    "senior-promote",
		TotalLP:          decimal.NewFromInt(700000),
		TotalGP:          decimal.NewFromInt(300000),
		LPIRRPct:         pctPtr(11.25),
		LPEquityMultiple: decimal.NewFromFloat(1.68),
	}

	result := calc.CalculateComparison(alt, base)

	// LP difference: 700000 - 750000 = -50000
	if !result.LPDiffFromBase.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("Expected LP diff -50000, got %s", result.LPDiffFromBase.String())
	}

	// GP difference: 300000 - 250000 = 50000
	if !result.GPDiffFromBase.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected GP diff 50000, got %s", result.GPDiffFromBase.String())
	}

	// IRR difference: 11.25 - 12.5 = -1.25 points
	if result.LPIRRDiffFromBase == nil {
		t.Fatal("Expected an IRR diff when both sides have one")
	}
	if !result.LPIRRDiffFromBase.Equal(decimal.NewFromFloat(-1.25)) {
		t.Errorf("Expected IRR diff -1.25, got %s", result.LPIRRDiffFromBase.String())
	}

	// Multiple difference: 1.68 - 1.8 = -0.12
	if !result.LPMultipleDiff.Equal(decimal.NewFromFloat(-0.12)) {
		t.Errorf("Expected multiple diff -0.12, got %s", result.LPMultipleDiff.String())
	}
}

func TestMetricsCalculator_CalculateComparison_MissingIRR(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{StructureName: "base", LPIRRPct: pctPtr(10)}
	alt := ComparisonResult{StructureName: "alt"}

	result := calc.CalculateComparison(alt, base)

	if result.LPIRRDiffFromBase != nil {
		t.Errorf("Expected no IRR diff when a side has no IRR, got %s", result.LPIRRDiffFromBase.String())
	}
}

func TestGenerateRecommendations(t *testing.T) {
	baseResult := &ComparisonResult{
		StructureName: "straight-split",
		TotalGP:       decimal.NewFromInt(250000),
		LPIRRPct:      pctPtr(12.5),
	}

	lpFriendly := ComparisonResult{
		StructureName:     "lp-friendly",
		TotalGP:           decimal.NewFromInt(200000),
		LPIRRPct:          pctPtr(14),
		LPIRRDiffFromBase: pctPtr(1.5),
	}

	gpPromote := ComparisonResult{
		StructureName:     "gp-promote",
		TotalGP:           decimal.NewFromInt(400000),
		LPIRRPct:          pctPtr(11),
		LPIRRDiffFromBase: pctPtr(-1.5),
	}

	compSet := &ComparisonSet{
		BaseStructureName:  "straight-split",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{lpFriendly, gpPromote},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %v", len(recommendations), recommendations)
	}

	if !containsSubstring(recommendations[0], "lp-friendly") {
		t.Errorf("Expected best-LP recommendation to name lp-friendly, got %s", recommendations[0])
	}

	if !containsSubstring(recommendations[1], "gp-promote") {
		t.Errorf("Expected GP-favorable recommendation to name gp-promote, got %s", recommendations[1])
	}
}

func TestGenerateRecommendations_BaseLeads(t *testing.T) {
	compSet := &ComparisonSet{
		BaseStructureName: "straight-split",
		BaseResult: &ComparisonResult{
			StructureName: "straight-split",
			TotalGP:       decimal.NewFromInt(400000),
			LPIRRPct:      pctPtr(15),
		},
		AlternativeResults: []ComparisonResult{
			{
				StructureName:     "worse",
				TotalGP:           decimal.NewFromInt(300000),
				LPIRRPct:          pctPtr(12),
				LPIRRDiffFromBase: pctPtr(-3),
			},
		},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d: %v", len(recommendations), recommendations)
	}

	if !containsSubstring(recommendations[0], "already leads") {
		t.Errorf("Expected the base to be called out as leading, got %s", recommendations[0])
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	compSet := &ComparisonSet{
		BaseStructureName: "only",
		BaseResult:        &ComparisonResult{StructureName: "only"},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations without alternatives, got %v", recommendations)
	}
}

func pctPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
