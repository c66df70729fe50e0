package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing promote structures.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("PROMOTE STRUCTURE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Deal: %s\n", compSet.DealName))
	sb.WriteString(fmt.Sprintf("Base Structure: %s\n", compSet.BaseStructureName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 25
	numWidth := 13

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Structure",
		numWidth, "LP IRR",
		numWidth, "LP Multiple",
		numWidth, "GP Total",
		numWidth, "GP % Profit"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base structure row
	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	// Alternative structures
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.StructureName))

			if alt.LPIRRDiffFromBase != nil {
				sb.WriteString(fmt.Sprintf("  LP IRR:           %s%s points\n",
					tf.deltaSymbol(*alt.LPIRRDiffFromBase),
					alt.LPIRRDiffFromBase.Abs().StringFixed(2)))
			}

			lpSymbol := tf.deltaSymbol(alt.LPDiffFromBase)
			sb.WriteString(fmt.Sprintf("  LP Distributions: %s$%s\n",
				lpSymbol, tf.formatDecimal(alt.LPDiffFromBase.Abs())))

			gpSymbol := tf.deltaSymbol(alt.GPDiffFromBase)
			sb.WriteString(fmt.Sprintf("  GP Distributions: %s$%s\n",
				gpSymbol, tf.formatDecimal(alt.GPDiffFromBase.Abs())))
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single structure row.
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.StructureName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatIRR(result.LPIRRPct),
		numWidth, result.LPEquityMultiple.StringFixed(2)+"x",
		numWidth, "$"+tf.formatDecimal(result.TotalGP),
		numWidth, result.GPProfitSharePct.StringFixed(1)+"%")
}

// formatIRR renders an optional IRR; a side with no return has none to show.
func (tf *TableFormatter) formatIRR(irr *decimal.Decimal) string {
	if irr == nil {
		return "n/a"
	}
	return irr.StringFixed(2) + "%"
}

// formatDecimal formats a dollar amount for display, compacting large values.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - prefix for deltas.
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen.
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of the comparison.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseStructureName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.LPIRRDiffFromBase != nil && !alt.LPIRRDiffFromBase.IsZero() {
			change = fmt.Sprintf("%s%s pts LP",
				tf.deltaSymbol(*alt.LPIRRDiffFromBase), alt.LPIRRDiffFromBase.Abs().StringFixed(2))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.StructureName, change))
	}

	return sb.String()
}
