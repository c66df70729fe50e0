package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV.
type CSVFormatter struct{}

// Format generates CSV output for comparison results.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Structure",
		"Type",
		"LP IRR %",
		"GP IRR %",
		"LP Multiple",
		"GP Multiple",
		"Total LP",
		"Total GP",
		"GP % of Profits",
		"LP IRR Diff (points)",
		"LP Diff from Base",
		"GP Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row.
func (cf *CSVFormatter) formatRow(result *ComparisonResult, structureType string) []string {
	return []string{
		result.StructureName,
		structureType,
		formatOptional(result.LPIRRPct),
		formatOptional(result.GPIRRPct),
		result.LPEquityMultiple.StringFixed(4),
		result.GPEquityMultiple.StringFixed(4),
		result.TotalLP.StringFixed(2),
		result.TotalGP.StringFixed(2),
		result.GPProfitSharePct.StringFixed(2),
		formatOptional(result.LPIRRDiffFromBase),
		result.LPDiffFromBase.StringFixed(2),
		result.GPDiffFromBase.StringFixed(2),
	}
}

// formatOptional renders a possibly-absent decimal; the cell stays empty when
// there is no value to report.
func formatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
