package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// Formatter renders a waterfall run in one output format.
type Formatter interface {
	Name() string
	Format(result *domain.WaterfallResult) ([]byte, error)
}

// FormatterFunc adapts a plain function into a Formatter.
type FormatterFunc struct {
	ID string
	F  func(result *domain.WaterfallResult) ([]byte, error)
}

func (ff FormatterFunc) Name() string { return ff.ID }

func (ff FormatterFunc) Format(result *domain.WaterfallResult) ([]byte, error) {
	return ff.F(result)
}

var formatters = map[string]Formatter{
	"console-lite": ConsoleFormatter{},
	"console":      ConsoleVerboseFormatter{},
	"csv":          CSVSummarizer{},
	"detailed-csv": FormatterFunc{ID: "detailed-csv", F: formatDetailedCSV},
	"json":         JSONFormatter{},
	"html":         HTMLFormatter{},
}

// formatAliases maps accepted spellings onto canonical formatter names.
var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"table":           "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
}

// NormalizeFormatName lowercases, trims, and resolves aliases. Unknown names
// pass through unchanged so callers can report them.
func NormalizeFormatName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// GetFormatterByName returns the formatter registered under the given name or
// alias, or nil if none exists.
func GetFormatterByName(name string) Formatter {
	return formatters[NormalizeFormatName(name)]
}

// AvailableFormatterNames returns the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alias spellings, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders the result with the given formatter and writes it to
// a timestamped deal_report file, returning the filename.
func WriteFormatted(formatter Formatter, result *domain.WaterfallResult, extension string) (string, error) {
	data, err := formatter.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("deal_report_%s.%s", time.Now().Format("20060102_150405"), extension)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// ConsoleFormatter renders the compact one-screen summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.WaterfallResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "WATERFALL DISTRIBUTION SUMMARY")
	fmt.Fprintln(&buf, "==============================")
	fmt.Fprintf(&buf, "Structure: %s | Tier selection: %s | Periods: %d\n",
		result.StructureName, result.StrategyUsed, len(result.Distributions))
	fmt.Fprintln(&buf)

	summary := result.Summary
	fmt.Fprintf(&buf, "Total Distributed: %s\n", FormatCurrency(summary.TotalDistributed))
	fmt.Fprintf(&buf, "GP: %s | IRR %s | %s | %s of equity\n",
		FormatCurrency(summary.TotalGP),
		formatOptionalPercent(summary.GPIRRPct),
		formatMultiple(summary.GPEquityMultiple),
		FormatPercentage(summary.GPEquityShare))
	fmt.Fprintf(&buf, "LP: %s | IRR %s | %s | %s of equity\n",
		FormatCurrency(summary.TotalLP),
		formatOptionalPercent(summary.LPIRRPct),
		formatMultiple(summary.LPEquityMultiple),
		FormatPercentage(summary.LPEquityShare))

	if tier := highestTierUsed(result); tier > 0 {
		fmt.Fprintf(&buf, "Highest tier reached: %d\n", tier)
	}

	return buf.Bytes(), nil
}

// JSONFormatter marshals the full result structure.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.WaterfallResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func highestTierUsed(result *domain.WaterfallResult) int {
	highest := 0
	for _, row := range result.Distributions {
		if row.TierOrder > highest {
			highest = row.TierOrder
		}
	}
	return highest
}

func formatOptionalPercent(value *decimal.Decimal) string {
	if value == nil {
		return "n/a"
	}
	return FormatPercentage(*value)
}

func formatMultiple(multiple decimal.Decimal) string {
	return multiple.StringFixed(2) + "x"
}
