package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"pct":      FormatPercentage,
	"optpct":   formatOptionalPercent,
	"multiple": formatMultiple,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.WaterfallResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.WaterfallResult
		Assumptions []string
		GeneratedAt string
	}{result, DefaultAssumptions, time.Now().Format("2006-01-02 15:04:05")}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
