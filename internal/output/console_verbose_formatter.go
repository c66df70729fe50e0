package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed period-by-period console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.WaterfallResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED WATERFALL DISTRIBUTION ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "STRUCTURE: %s\n", result.StructureName)
	fmt.Fprintf(&buf, "Tier selection: %s\n", result.StrategyUsed)
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PERIOD-BY-PERIOD DISTRIBUTIONS:")
	fmt.Fprintf(&buf, "%-8s %15s %14s %6s %10s %15s %15s %15s %15s\n",
		"Period", "Cash Flow", "Trailing IRR", "Tier", "GP Split",
		"GP Amount", "LP Amount", "Cum. GP", "Cum. LP")
	fmt.Fprintln(&buf, strings.Repeat("-", 120))

	for _, row := range result.Distributions {
		fmt.Fprintf(&buf, "%-8d %15s %14s %6d %10s %15s %15s %15s %15s\n",
			row.Period,
			FormatCurrency(row.TotalCashFlow),
			formatOptionalPercent(row.ReferenceIRRPct),
			row.TierOrder,
			FormatPercentage(row.GPPercentUsed),
			FormatCurrency(row.GPAmount),
			FormatCurrency(row.LPAmount),
			FormatCurrency(row.CumulativeGP),
			FormatCurrency(row.CumulativeLP))
	}
	fmt.Fprintln(&buf)

	summary := result.Summary
	fmt.Fprintln(&buf, "RETURNS BY SIDE:")
	fmt.Fprintf(&buf, "%-30s %15s %15s %15s\n", "COMPONENT", "GP", "LP", "TOTAL")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	sideLine(&buf, "Distributions",
		FormatCurrency(summary.TotalGP),
		FormatCurrency(summary.TotalLP),
		FormatCurrency(summary.TotalDistributed))
	sideLine(&buf, "Equity share",
		FormatPercentage(summary.GPEquityShare),
		FormatPercentage(summary.LPEquityShare),
		FormatPercentage(summary.GPEquityShare.Add(summary.LPEquityShare)))
	sideLine(&buf, "Equity multiple",
		formatMultiple(summary.GPEquityMultiple),
		formatMultiple(summary.LPEquityMultiple),
		"")
	sideLine(&buf, "IRR",
		formatOptionalPercent(summary.GPIRRPct),
		formatOptionalPercent(summary.LPIRRPct),
		"")
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY INSIGHTS:")
	if tier := highestTierUsed(result); tier > 0 {
		fmt.Fprintf(&buf, "• Highest tier reached: %d of the ladder\n", tier)
	}
	proRataGP := summary.TotalDistributed.Mul(summary.GPEquityShare).Div(domain.Hundred)
	promote := summary.TotalGP.Sub(proRataGP)
	if promote.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&buf, "• Promote earned the sponsor %s above a pro-rata equity share\n", FormatCurrency(promote))
	} else if promote.LessThan(decimal.Zero) {
		fmt.Fprintf(&buf, "• Sponsor collected %s below a pro-rata equity share\n", FormatCurrency(promote.Abs()))
	} else {
		fmt.Fprintln(&buf, "• Distributions match a pro-rata equity share exactly")
	}

	return buf.Bytes(), nil
}

func sideLine(buf *bytes.Buffer, label, gp, lp, total string) {
	fmt.Fprintf(buf, "%-30s %15s %15s %15s\n", label, gp, lp, total)
}
