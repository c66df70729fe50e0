package transform

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// Helper function to create a basic term-sheet deal
func createTestDeal() *domain.DealConfig {
	growth := decimal.NewFromInt(3)

	return &domain.DealConfig{
		DealName: "Test Deal",
		Loan: domain.LoanTerms{
			Principal:         decimal.NewFromInt(3000000),
			InterestRatePct:   decimal.NewFromFloat(6.5),
			AmortizationYears: 30,
		},
		EquityInvestment:   decimal.NewFromInt(1000000),
		PreferredReturnPct: decimal.NewFromInt(8),
		Structures: []domain.PromoteStructure{
			{
				Name: "straight-split",
				Tiers: []domain.WaterfallTier{
					{Order: 1, GPSplitPct: decimal.NewFromInt(20), LPSplitPct: decimal.NewFromInt(80)},
				},
			},
		},
		TermSheet: &domain.TermSheetAssumptions{
			TermYears:      5,
			InitialNOI:     decimal.NewFromInt(400000),
			NOIGrowthPct:   &growth,
			ExitCapRatePct: decimal.NewFromFloat(5.5),
		},
	}
}

func TestApplyTransforms_NilDeal(t *testing.T) {
	transforms := []DealTransform{
		&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(0.5)},
	}

	_, err := ApplyTransforms(nil, transforms)
	if err == nil {
		t.Error("Expected error for nil deal, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestDeal()
	transforms := []DealTransform{}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}

	// Should return a copy, not the same instance
	if result == base {
		t.Error("Expected a copy, got same instance")
	}

	// But content should be the same
	if result.DealName != base.DealName {
		t.Errorf("Expected name %s, got %s", base.DealName, result.DealName)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestDeal()
	transforms := []DealTransform{
		&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(0.5)},
		nil, // Nil transform should cause error
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Error("Expected error for nil transform in list, got nil")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestDeal()
	base.TermSheet = nil

	transforms := []DealTransform{
		&SetNOIGrowth{GrowthPct: decimal.NewFromInt(5)},
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Error("Expected validation error for deal without term sheet, got nil")
	}
}

func TestApplyTransforms_SingleTransform(t *testing.T) {
	base := createTestDeal()
	originalRate := base.Loan.InterestRatePct

	transforms := []DealTransform{
		&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(0.5)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedRate := decimal.NewFromFloat(7.0)
	if !result.Loan.InterestRatePct.Equal(expectedRate) {
		t.Errorf("Expected rate %s, got %s", expectedRate, result.Loan.InterestRatePct)
	}

	// Original should be unchanged
	if !base.Loan.InterestRatePct.Equal(originalRate) {
		t.Error("Original deal was modified")
	}
}

func TestApplyTransforms_MultipleTransforms(t *testing.T) {
	base := createTestDeal()

	transforms := []DealTransform{
		&AdjustInterestRate{DeltaPct: decimal.NewFromInt(1)},
		&SetNOIGrowth{GrowthPct: decimal.Zero},
		&AdjustExitCapRate{DeltaPct: decimal.NewFromInt(1)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Loan.InterestRatePct.Equal(decimal.NewFromFloat(7.5)) {
		t.Errorf("Expected rate 7.5, got %s", result.Loan.InterestRatePct)
	}

	if result.TermSheet.NOIGrowthPct == nil || !result.TermSheet.NOIGrowthPct.IsZero() {
		t.Errorf("Expected zero growth, got %v", result.TermSheet.NOIGrowthPct)
	}

	if !result.TermSheet.ExitCapRatePct.Equal(decimal.NewFromFloat(6.5)) {
		t.Errorf("Expected exit cap 6.5, got %s", result.TermSheet.ExitCapRatePct)
	}

	// Original should be unchanged
	if !base.Loan.InterestRatePct.Equal(decimal.NewFromFloat(6.5)) {
		t.Error("Original deal was modified")
	}
	if !base.TermSheet.NOIGrowthPct.Equal(decimal.NewFromInt(3)) {
		t.Error("Original term sheet was modified")
	}
}

func TestApplyTransforms_TransformChaining(t *testing.T) {
	base := createTestDeal()

	// Each transform receives the output of the previous one
	transforms := []DealTransform{
		&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(0.25)},
		&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(0.25)}, // Should add another 25bps
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedRate := decimal.NewFromFloat(7.0)
	if !result.Loan.InterestRatePct.Equal(expectedRate) {
		t.Errorf("Expected rate %s (50bps higher), got %s", expectedRate, result.Loan.InterestRatePct)
	}
}

func TestAdjustInterestRate_Validate(t *testing.T) {
	base := createTestDeal()

	transform := &AdjustInterestRate{DeltaPct: decimal.NewFromInt(-7)}
	if err := transform.Validate(base); err == nil {
		t.Error("Expected error for adjustment below zero, got nil")
	}

	transform = &AdjustInterestRate{DeltaPct: decimal.NewFromInt(-6)}
	if err := transform.Validate(base); err != nil {
		t.Errorf("Expected no error for adjustment to 0.5, got: %v", err)
	}

	if err := transform.Validate(nil); err == nil {
		t.Error("Expected error for nil deal, got nil")
	}
}

func TestSetInterestRate_Apply(t *testing.T) {
	base := createTestDeal()

	transform := &SetInterestRate{RatePct: decimal.NewFromFloat(5.25)}
	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Loan.InterestRatePct.Equal(decimal.NewFromFloat(5.25)) {
		t.Errorf("Expected rate 5.25, got %s", result.Loan.InterestRatePct)
	}
}

func TestSetInterestRate_Validate_Negative(t *testing.T) {
	transform := &SetInterestRate{RatePct: decimal.NewFromInt(-1)}
	if err := transform.Validate(createTestDeal()); err == nil {
		t.Error("Expected error for negative rate, got nil")
	}
}

func TestSetAmortization_Validate(t *testing.T) {
	transform := &SetAmortization{Years: 0}
	if err := transform.Validate(createTestDeal()); err == nil {
		t.Error("Expected error for zero years, got nil")
	}
}

func TestSetNOIGrowth_Apply_DoesNotShareBasePointer(t *testing.T) {
	base := createTestDeal()

	transform := &SetNOIGrowth{GrowthPct: decimal.NewFromInt(5)}
	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.TermSheet.NOIGrowthPct == base.TermSheet.NOIGrowthPct {
		t.Error("Modified deal shares the growth pointer with the base")
	}

	if !result.TermSheet.NOIGrowthPct.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected growth 5, got %s", result.TermSheet.NOIGrowthPct)
	}
}

func TestSetInitialNOI_Validate(t *testing.T) {
	base := createTestDeal()

	transform := &SetInitialNOI{NOI: decimal.Zero}
	if err := transform.Validate(base); err == nil {
		t.Error("Expected error for zero NOI, got nil")
	}

	base.TermSheet = nil
	transform = &SetInitialNOI{NOI: decimal.NewFromInt(500000)}
	if err := transform.Validate(base); err == nil {
		t.Error("Expected error for deal without term sheet, got nil")
	}
}

func TestAdjustExitCapRate_Validate(t *testing.T) {
	base := createTestDeal()

	transform := &AdjustExitCapRate{DeltaPct: decimal.NewFromFloat(-5.5)}
	if err := transform.Validate(base); err == nil {
		t.Error("Expected error for compression to zero, got nil")
	}
}

func TestSetHoldPeriod_Apply(t *testing.T) {
	base := createTestDeal()

	transform := &SetHoldPeriod{Years: 10}
	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.TermSheet.TermYears != 10 {
		t.Errorf("Expected 10 year hold, got %d", result.TermSheet.TermYears)
	}

	if base.TermSheet.TermYears != 5 {
		t.Error("Original deal was modified")
	}
}

func TestSetPreferredReturn_Apply(t *testing.T) {
	base := createTestDeal()

	transform := &SetPreferredReturn{RatePct: decimal.Zero}
	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.PreferredReturnPct.IsZero() {
		t.Errorf("Expected zero preferred return, got %s", result.PreferredReturnPct)
	}
}

func TestSetEquitySplit_Validate(t *testing.T) {
	base := createTestDeal()

	transform := &SetEquitySplit{
		GPPct: decimal.NewFromInt(30),
		LPPct: decimal.NewFromInt(60),
	}
	if err := transform.Validate(base); err == nil {
		t.Error("Expected error for split not summing to 100, got nil")
	}

	transform = &SetEquitySplit{
		GPPct: decimal.NewFromInt(30),
		LPPct: decimal.NewFromInt(70),
	}
	if err := transform.Validate(base); err != nil {
		t.Errorf("Expected no error for 30/70 split, got: %v", err)
	}
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("test_transform", "apply", "test reason", nil)

	if err == nil {
		t.Fatal("Expected non-nil error")
	}

	expectedMsg := "transform test_transform (apply): test reason"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestTransformError_WithWrappedError(t *testing.T) {
	innerErr := fmt.Errorf("inner error")
	err := NewTransformError("test_transform", "validate", "validation failed", innerErr)

	if err == nil {
		t.Fatal("Expected non-nil error")
	}

	expectedMsg := "transform test_transform (validate): validation failed: inner error"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestRegistry_Create(t *testing.T) {
	registry := NewTransformRegistry()

	transform, err := registry.Create("adjust_rate", map[string]string{"delta": "0.5"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if transform.Name() != "adjust_rate" {
		t.Errorf("Expected adjust_rate, got %s", transform.Name())
	}

	adjust, ok := transform.(*AdjustInterestRate)
	if !ok {
		t.Fatalf("Expected *AdjustInterestRate, got %T", transform)
	}
	if !adjust.DeltaPct.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("Expected delta 0.5, got %s", adjust.DeltaPct)
	}
}

func TestRegistry_Create_Unknown(t *testing.T) {
	registry := NewTransformRegistry()

	_, err := registry.Create("defy_gravity", nil)
	if err == nil {
		t.Error("Expected error for unknown transform, got nil")
	}
}

func TestRegistry_Create_MissingParameter(t *testing.T) {
	registry := NewTransformRegistry()

	_, err := registry.Create("set_hold", map[string]string{})
	if err == nil {
		t.Error("Expected error for missing years parameter, got nil")
	}
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	transform, err := registry.ParseTransformSpec("set_equity_split:gp=30,lp=70")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	split, ok := transform.(*SetEquitySplit)
	if !ok {
		t.Fatalf("Expected *SetEquitySplit, got %T", transform)
	}
	if !split.GPPct.Equal(decimal.NewFromInt(30)) || !split.LPPct.Equal(decimal.NewFromInt(70)) {
		t.Errorf("Expected 30/70, got %s/%s", split.GPPct, split.LPPct)
	}
}

func TestRegistry_ParseTransformSpec_BadFormat(t *testing.T) {
	registry := NewTransformRegistry()

	if _, err := registry.ParseTransformSpec("no-colon-here"); err == nil {
		t.Error("Expected error for spec without colon, got nil")
	}

	if _, err := registry.ParseTransformSpec("set_hold:years"); err == nil {
		t.Error("Expected error for parameter without value, got nil")
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewTransformRegistry()

	names := registry.List()
	if len(names) < 10 {
		t.Errorf("Expected at least 10 registered transforms, got %d", len(names))
	}

	found := false
	for _, name := range names {
		if name == "set_exit_cap" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected set_exit_cap in registry list")
	}
}
