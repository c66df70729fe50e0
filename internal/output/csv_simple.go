package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per period).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.WaterfallResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Period", "TotalCashFlow", "TrailingIRRPct", "TierOrder", "GPAmount", "LPAmount", "CumulativeGP", "CumulativeLP"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range result.Distributions {
		record := []string{
			intToString(row.Period),
			row.TotalCashFlow.StringFixed(2),
			optionalFixed(row.ReferenceIRRPct, 4),
			intToString(row.TierOrder),
			row.GPAmount.StringFixed(2),
			row.LPAmount.StringFixed(2),
			row.CumulativeGP.StringFixed(2),
			row.CumulativeLP.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}

// formatDetailedCSV denormalizes every distribution field per row, trailing
// the per-side summary columns for spreadsheet pivoting.
func formatDetailedCSV(result *domain.WaterfallResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Structure", "Strategy", "Period", "TotalCashFlow", "TrailingIRRPct", "TierOrder",
		"GPPercentUsed", "LPPercentUsed", "GPAmount", "LPAmount", "CumulativeGP", "CumulativeLP",
		"TotalGP", "TotalLP", "GPIRRPct", "LPIRRPct", "GPEquityMultiple", "LPEquityMultiple",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	summary := result.Summary
	for _, row := range result.Distributions {
		record := []string{
			result.StructureName,
			result.StrategyUsed,
			intToString(row.Period),
			row.TotalCashFlow.StringFixed(2),
			optionalFixed(row.ReferenceIRRPct, 4),
			intToString(row.TierOrder),
			row.GPPercentUsed.StringFixed(2),
			row.LPPercentUsed.StringFixed(2),
			row.GPAmount.StringFixed(2),
			row.LPAmount.StringFixed(2),
			row.CumulativeGP.StringFixed(2),
			row.CumulativeLP.StringFixed(2),
			summary.TotalGP.StringFixed(2),
			summary.TotalLP.StringFixed(2),
			optionalFixed(summary.GPIRRPct, 4),
			optionalFixed(summary.LPIRRPct, 4),
			summary.GPEquityMultiple.StringFixed(4),
			summary.LPEquityMultiple.StringFixed(4),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}

func intToString(v int) string { return strconv.Itoa(v) }

// optionalFixed renders a nullable decimal, leaving the cell empty when the
// value does not exist.
func optionalFixed(value *decimal.Decimal, places int32) string {
	if value == nil {
		return ""
	}
	return value.StringFixed(places)
}
