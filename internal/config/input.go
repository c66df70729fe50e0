package config

import (
	"fmt"
	"os"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var decimalOne = decimal.NewFromInt(1)

// InputParser handles parsing of deal configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a deal from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.DealConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.DealConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDeal(&config); err != nil {
		return nil, fmt.Errorf("deal validation failed: %w", err)
	}

	return &config, nil
}

// ValidateDeal validates the loaded deal file. Field-level rules live on the
// domain types; this layer checks that the file as a whole is usable.
func (ip *InputParser) ValidateDeal(config *domain.DealConfig) error {
	if config.DealName == "" {
		return fmt.Errorf("deal_name is required")
	}

	if err := ip.validateStructures(config); err != nil {
		return err
	}

	if len(config.CashFlows) == 0 && config.TermSheet == nil {
		return fmt.Errorf("deal needs cash_flows or term_sheet assumptions to analyze anything")
	}

	if len(config.CashFlows) > 0 {
		if err := config.CashFlows.Validate(); err != nil {
			return fmt.Errorf("cash flow validation failed: %w", err)
		}
	}

	if config.PreferredReturnPct.IsNegative() {
		return fmt.Errorf("preferred_return_pct cannot be negative")
	}

	if !config.EquitySplit.IsZero() {
		if err := config.EquitySplit.Validate(); err != nil {
			return fmt.Errorf("equity split validation failed: %w", err)
		}
	}

	if config.TermSheet != nil {
		if err := ip.validateTermSheet(config); err != nil {
			return fmt.Errorf("term sheet validation failed: %w", err)
		}
	}

	if config.DebtSizing != nil {
		if err := ip.validateDebtSizing(config); err != nil {
			return fmt.Errorf("debt sizing validation failed: %w", err)
		}
	}

	return nil
}

// validateStructures checks the deal's promote ladders.
func (ip *InputParser) validateStructures(config *domain.DealConfig) error {
	if len(config.Structures) == 0 {
		return fmt.Errorf("at least one promote structure is required")
	}

	seen := make(map[string]bool, len(config.Structures))
	for i, structure := range config.Structures {
		if structure.Name == "" {
			return fmt.Errorf("structure %d: name is required", i)
		}
		if seen[structure.Name] {
			return fmt.Errorf("structure %d: duplicate name %s", i, structure.Name)
		}
		seen[structure.Name] = true

		if err := structure.Validate(); err != nil {
			return fmt.Errorf("structure %d (%s) validation failed: %w", i, structure.Name, err)
		}
	}

	return nil
}

// validateTermSheet checks the projection assumptions and the loan and
// equity they depend on.
func (ip *InputParser) validateTermSheet(config *domain.DealConfig) error {
	if err := config.Loan.Validate(); err != nil {
		return fmt.Errorf("loan validation failed: %w", err)
	}
	if !config.EquityInvestment.IsPositive() {
		return fmt.Errorf("equity_investment must be positive")
	}

	ts := config.TermSheet
	if ts.TermYears <= 0 {
		return fmt.Errorf("term_years must be at least 1")
	}
	if !ts.InitialNOI.IsPositive() {
		return fmt.Errorf("initial_noi must be positive")
	}
	if ts.NOIGrowthPct != nil && ts.NOIGrowthPct.IsNegative() {
		return fmt.Errorf("noi_growth_pct cannot be negative")
	}
	if !ts.ExitCapRatePct.IsPositive() {
		return fmt.Errorf("exit_cap_rate_pct must be positive")
	}

	return nil
}

// validateDebtSizing checks the sizing inputs and the loan terms they
// borrow the rate and amortization from.
func (ip *InputParser) validateDebtSizing(config *domain.DealConfig) error {
	ds := config.DebtSizing
	if !ds.NOI.IsPositive() {
		return fmt.Errorf("noi must be positive")
	}
	if ds.DSCRTarget.LessThan(decimalOne) {
		return fmt.Errorf("dscr_target must be at least 1.0")
	}
	if config.Loan.InterestRatePct.IsNegative() {
		return fmt.Errorf("interest_rate_pct cannot be negative")
	}
	if config.Loan.AmortizationYears <= 0 {
		return fmt.Errorf("amortization_years must be positive")
	}

	return nil
}
