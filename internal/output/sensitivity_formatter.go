package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityReport(report *domain.SensitivityReport) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityReport(report *domain.SensitivityReport) (string, error) {
	if report == nil || len(report.Analyses) == 0 {
		return "", fmt.Errorf("no analyses in report")
	}

	var buf bytes.Buffer

	for _, analysis := range report.Analyses {
		scf.formatAnalysis(&buf, &analysis)
		fmt.Fprintln(&buf)
	}

	scf.formatSummary(&buf, report)

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatAnalysis(buf *bytes.Buffer, analysis *domain.SensitivityAnalysis) {
	param := analysis.Parameter

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintf(buf, "=================================================================\n")
	fmt.Fprintf(buf, "Base Case: %s = %s\n", param.Name, formatParameterValue(param.BaseValue, param.Unit))
	fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n",
		formatParameterValue(param.MinValue, param.Unit),
		formatParameterValue(param.MaxValue, param.Unit),
		param.Steps)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	baseStep := closestStep(analysis)

	fmt.Fprintf(buf, "%-18s %-12s %-12s %-12s %-16s\n",
		param.Name, "LP IRR", "GP IRR", "LP Multiple", "Net Sale")
	fmt.Fprintln(buf, strings.Repeat("-", 75))

	for i := range analysis.Steps {
		step := &analysis.Steps[i]
		valueStr := formatParameterValue(step.ParameterValue, param.Unit)
		if baseStep == i {
			valueStr += " ← BASE"
		}

		fmt.Fprintf(buf, "%-18s %-12s %-12s %-12s %-16s\n",
			valueStr,
			formatOptionalPercent(step.LPIRRPct),
			formatOptionalPercent(step.GPIRRPct),
			formatMultiple(step.LPEquityMultiple),
			FormatCurrency(step.NetSaleProceeds))
	}

	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "LP IRR swing across range: %s points\n", analysis.IRRSwingPct.StringFixed(2))
}

func (scf SensitivityConsoleFormatter) formatSummary(buf *bytes.Buffer, report *domain.SensitivityReport) {
	summary := report.Summary

	if summary.MostSensitiveParameter != "" {
		fmt.Fprintf(buf, "MOST SENSITIVE PARAMETER: %s\n", summary.MostSensitiveParameter)
	}

	riskEmoji := ""
	switch summary.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	case "CRITICAL":
		riskEmoji = "🚨"
	}

	fmt.Fprintf(buf, "RISK LEVEL: %s %s\n", riskEmoji, summary.RiskLevel)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "RECOMMENDATIONS:")
	for _, rec := range summary.Recommendations {
		fmt.Fprintf(buf, "  • %s\n", rec)
	}
}

// closestStep finds the swept step nearest the parameter's base value, the
// row marked as the base case in console output.
func closestStep(analysis *domain.SensitivityAnalysis) int {
	closest := -1
	minDiff := decimal.NewFromFloat(999999999)

	for i := range analysis.Steps {
		diff := analysis.Steps[i].ParameterValue.Sub(analysis.Parameter.BaseValue).Abs()
		if diff.LessThan(minDiff) {
			minDiff = diff
			closest = i
		}
	}

	return closest
}

func formatParameterValue(value decimal.Decimal, unit string) string {
	if unit == "dollars" {
		return FormatCurrency(value)
	}
	return FormatPercentage(value)
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityReport(report *domain.SensitivityReport) (string, error) {
	if report == nil || len(report.Analyses) == 0 {
		return "", fmt.Errorf("no analyses in report")
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "parameter_name,parameter_value,lp_irr_pct,gp_irr_pct,lp_equity_multiple,gp_equity_multiple,net_sale_proceeds\n")

	for _, analysis := range report.Analyses {
		for _, step := range analysis.Steps {
			fmt.Fprintf(&buf, "%s,%s,%s,%s,%s,%s,%s\n",
				analysis.Parameter.Name,
				step.ParameterValue.StringFixed(4),
				optionalFixed(step.LPIRRPct, 4),
				optionalFixed(step.GPIRRPct, 4),
				step.LPEquityMultiple.StringFixed(4),
				step.GPEquityMultiple.StringFixed(4),
				step.NetSaleProceeds.StringFixed(2))
		}
	}

	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityReport(report *domain.SensitivityReport) (string, error) {
	if report == nil || len(report.Analyses) == 0 {
		return "", fmt.Errorf("no analyses in report")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{} // Default to console
	}
}
