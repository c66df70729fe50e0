package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter renders break-even results as console tables.
type TableFormatter struct{}

// Format renders a single-assumption result.
func (f TableFormatter) Format(result *Result) string {
	var b strings.Builder

	b.WriteString("BREAK-EVEN ANALYSIS\n")
	b.WriteString(strings.Repeat("=", 72) + "\n\n")

	if result.Success {
		b.WriteString(fmt.Sprintf("✓ Converged in %d iterations\n\n", result.Iterations))
	} else {
		b.WriteString(fmt.Sprintf("⚠ Did not converge: %s\n\n", result.ConvergenceInfo))
	}

	b.WriteString(fmt.Sprintf("%-19s %s\n", "Assumption:", result.Target))
	b.WriteString(fmt.Sprintf("%-19s %s%%\n", "Target LP IRR:", result.TargetLPIRRPct.StringFixed(2)))
	b.WriteString(fmt.Sprintf("%-19s %s%%\n\n", "Achieved LP IRR:", result.AchievedLPIRRPct.StringFixed(2)))

	b.WriteString(fmt.Sprintf("%-19s %s\n", "Base value:", formatTargetValue(result.Target, result.BaseValue)))
	b.WriteString(fmt.Sprintf("%-19s %s\n", "Break-even value:", formatTargetValue(result.Target, result.OptimalValue)))
	b.WriteString(fmt.Sprintf("%-19s %s\n", "Required move:", signedPct(result.MovePct())))

	if p := result.Projection; p != nil {
		b.WriteString("\nPROJECTION AT BREAK-EVEN\n")
		b.WriteString(strings.Repeat("-", 72) + "\n")
		if p.Summary.GPIRRPct != nil {
			b.WriteString(fmt.Sprintf("%-19s %s%%\n", "GP IRR:", p.Summary.GPIRRPct.StringFixed(2)))
		}
		b.WriteString(fmt.Sprintf("%-19s %sx\n", "LP equity multiple:", p.Summary.LPEquityMultiple.StringFixed(2)))
		b.WriteString(fmt.Sprintf("%-19s %s\n", "Net sale proceeds:", formatShortCurrency(p.NetSaleProceeds)))
	}

	return b.String()
}

// FormatMulti renders the all-assumptions comparison.
func (f TableFormatter) FormatMulti(multi *MultiResult) string {
	var b strings.Builder

	b.WriteString("BREAK-EVEN ANALYSIS: ALL ASSUMPTIONS\n")
	b.WriteString(strings.Repeat("=", 72) + "\n\n")
	b.WriteString(fmt.Sprintf("%-19s %s%%\n\n", "Target LP IRR:", multi.TargetLPIRRPct.StringFixed(2)))

	b.WriteString(fmt.Sprintf("%-22s %14s %14s %10s %6s\n", "Assumption", "Base", "Break-Even", "Move", "Iters"))
	b.WriteString(strings.Repeat("-", 72) + "\n")
	for _, result := range multi.Results {
		b.WriteString(fmt.Sprintf("%-22s %14s %14s %10s %6d\n",
			result.Target,
			formatTargetValue(result.Target, result.BaseValue),
			formatTargetValue(result.Target, result.OptimalValue),
			signedPct(result.MovePct()),
			result.Iterations))
	}
	for _, blocked := range multi.Unreachable {
		b.WriteString(fmt.Sprintf("%-22s %14s\n", blocked.Target, "unreachable"))
	}

	if len(multi.Recommendations) > 0 {
		b.WriteString("\nRECOMMENDATIONS\n")
		b.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range multi.Recommendations {
			b.WriteString("• " + rec + "\n")
		}
	}

	return b.String()
}

// JSONFormatter renders break-even results as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format renders a single-assumption result.
func (f JSONFormatter) Format(result *Result) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling break-even result: %w", err)
	}
	return string(data), nil
}

// FormatMulti renders the all-assumptions comparison.
func (f JSONFormatter) FormatMulti(multi *MultiResult) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Pretty {
		data, err = json.MarshalIndent(multi, "", "  ")
	} else {
		data, err = json.Marshal(multi)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling break-even results: %w", err)
	}
	return string(data), nil
}

// formatTargetValue prints a target value in its natural unit: dollars for
// NOI, percent for everything else.
func formatTargetValue(target Target, value decimal.Decimal) string {
	if target == TargetInitialNOI {
		return "$" + value.StringFixed(0)
	}
	return value.StringFixed(2) + "%"
}

// signedPct prints a relative move with an explicit sign.
func signedPct(value decimal.Decimal) string {
	s := value.StringFixed(1) + "%"
	if !value.IsNegative() {
		return "+" + s
	}
	return s
}

// formatShortCurrency compresses dollar amounts for summary lines.
func formatShortCurrency(value decimal.Decimal) string {
	million := decimal.NewFromInt(1000000)
	thousand := decimal.NewFromInt(1000)
	abs := value.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return "$" + value.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return "$" + value.Div(thousand).StringFixed(0) + "K"
	default:
		return "$" + value.StringFixed(0)
	}
}
