package output

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// fileExtensions maps canonical formatter names to the extension used when a
// report is written to disk.
var fileExtensions = map[string]string{
	"csv":          "csv",
	"detailed-csv": "csv",
	"json":         "json",
	"html":         "html",
}

// GenerateReport renders a waterfall result in the requested format. Console
// formats print to stdout; file formats write a timestamped report and print
// its name.
func GenerateReport(result *domain.WaterfallResult, format string) error {
	name := NormalizeFormatName(format)
	formatter := GetFormatterByName(name)
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}

	extension, writesFile := fileExtensions[name]
	if !writesFile {
		data, err := formatter.Format(result)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	filename, err := WriteFormatted(formatter, result, extension)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", filename)
	return nil
}

// SaveDeal writes a deal configuration to a YAML file.
func SaveDeal(config *domain.DealConfig, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
