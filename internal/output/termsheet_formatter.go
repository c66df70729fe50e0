package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// ProjectionFormatter defines a formatter for term sheet projections.
type ProjectionFormatter interface {
	FormatProjection(projection *domain.TermSheetProjection) (string, error)
	Name() string
}

// NewProjectionFormatter creates a projection formatter based on the format name.
func NewProjectionFormatter(format string) ProjectionFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return &ProjectionCSVFormatter{}
	case "json":
		return &ProjectionJSONFormatter{}
	default:
		return &ProjectionTableFormatter{}
	}
}

// ProjectionTableFormatter formats term sheet projections as a console table.
type ProjectionTableFormatter struct{}

func (f *ProjectionTableFormatter) Name() string {
	return "table"
}

func (f *ProjectionTableFormatter) FormatProjection(projection *domain.TermSheetProjection) (string, error) {
	if projection == nil {
		return "", fmt.Errorf("projection cannot be nil")
	}

	var output strings.Builder

	output.WriteString("TERM SHEET PROJECTION\n")
	output.WriteString("=================================================================\n")
	output.WriteString(fmt.Sprintf("Deal: %s\n", projection.DealName))
	output.WriteString(fmt.Sprintf("Structure: %s\n", projection.StructureName))
	output.WriteString(fmt.Sprintf("Tier selection: %s\n\n", projection.StrategyUsed))

	output.WriteString(fmt.Sprintf("%-6s %14s %14s %14s %10s %14s %6s %14s %14s\n",
		"Year", "NOI", "Debt Service", "Cash Flow", "Yield", "Preferred", "Tier", "GP", "LP"))
	output.WriteString(strings.Repeat("-", 115) + "\n")

	for _, year := range projection.Years {
		output.WriteString(fmt.Sprintf("%-6d %14s %14s %14s %10s %14s %6d %14s %14s\n",
			year.Year,
			FormatCurrency(year.NOI),
			FormatCurrency(year.DebtService),
			FormatCurrency(year.CashFlowAfterDebt),
			FormatPercentage(year.CashYieldPct),
			FormatCurrency(year.PreferredPayment),
			year.TierOrder,
			FormatCurrency(year.GPDistribution),
			FormatCurrency(year.LPDistribution)))
	}
	output.WriteString("\n")

	output.WriteString("EXIT:\n")
	output.WriteString(fmt.Sprintf("  Sale Proceeds:        %s\n", FormatCurrency(projection.SaleProceeds)))
	output.WriteString(fmt.Sprintf("  Loan Balance at Exit: %s\n", FormatCurrency(projection.LoanBalanceAtExit)))
	output.WriteString(fmt.Sprintf("  Net Sale Proceeds:    %s\n\n", FormatCurrency(projection.NetSaleProceeds)))

	summary := projection.Summary
	output.WriteString("PROJECTED RETURNS:\n")
	output.WriteString(fmt.Sprintf("  Total Distributed:    %s\n", FormatCurrency(summary.TotalDistributed)))
	output.WriteString(fmt.Sprintf("  GP: %s  (IRR %s, %s)\n",
		FormatCurrency(summary.TotalGP),
		formatOptionalPercent(summary.GPIRRPct),
		formatMultiple(summary.GPEquityMultiple)))
	output.WriteString(fmt.Sprintf("  LP: %s  (IRR %s, %s)\n",
		FormatCurrency(summary.TotalLP),
		formatOptionalPercent(summary.LPIRRPct),
		formatMultiple(summary.LPEquityMultiple)))

	return output.String(), nil
}

// ProjectionCSVFormatter formats term sheet projections as CSV.
type ProjectionCSVFormatter struct{}

func (f *ProjectionCSVFormatter) Name() string {
	return "csv"
}

func (f *ProjectionCSVFormatter) FormatProjection(projection *domain.TermSheetProjection) (string, error) {
	if projection == nil {
		return "", fmt.Errorf("projection cannot be nil")
	}

	var output strings.Builder

	output.WriteString("year,noi,debt_service,cash_flow_after_debt,cash_yield_pct,preferred_payment,excess_cash_flow,tier_order,net_sale_proceeds,gp_distribution,lp_distribution\n")
	for _, year := range projection.Years {
		output.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%s,%s,%d,%s,%s,%s\n",
			year.Year,
			year.NOI.StringFixed(2),
			year.DebtService.StringFixed(2),
			year.CashFlowAfterDebt.StringFixed(2),
			year.CashYieldPct.StringFixed(4),
			year.PreferredPayment.StringFixed(2),
			year.ExcessCashFlow.StringFixed(2),
			year.TierOrder,
			year.NetSaleProceeds.StringFixed(2),
			year.GPDistribution.StringFixed(2),
			year.LPDistribution.StringFixed(2)))
	}

	return output.String(), nil
}

// ProjectionJSONFormatter formats term sheet projections as JSON.
type ProjectionJSONFormatter struct{}

func (f *ProjectionJSONFormatter) Name() string {
	return "json"
}

func (f *ProjectionJSONFormatter) FormatProjection(projection *domain.TermSheetProjection) (string, error) {
	if projection == nil {
		return "", fmt.Errorf("projection cannot be nil")
	}

	data, err := json.MarshalIndent(projection, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
