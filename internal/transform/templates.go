package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LaxBloxBoy2/crego/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []DealTransform
}

// NewTemplateRegistry creates a new template registry with built-in templates
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// CreateBuiltInTemplates creates a template registry with common deal what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Financing templates
	registry.Register(Template{
		Name:        "rate_bump_50",
		Description: "Raise the loan rate by 50 basis points",
		Transforms: []DealTransform{
			&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(0.5)},
		},
	})

	registry.Register(Template{
		Name:        "rate_bump_100",
		Description: "Raise the loan rate by 100 basis points",
		Transforms: []DealTransform{
			&AdjustInterestRate{DeltaPct: decimal.NewFromInt(1)},
		},
	})

	registry.Register(Template{
		Name:        "rate_cut_50",
		Description: "Cut the loan rate by 50 basis points",
		Transforms: []DealTransform{
			&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(-0.5)},
		},
	})

	// Operating templates
	registry.Register(Template{
		Name:        "flat_noi",
		Description: "Hold NOI flat for the whole term (no growth)",
		Transforms: []DealTransform{
			&SetNOIGrowth{GrowthPct: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "noi_growth_5",
		Description: "Grow NOI at 5% per year",
		Transforms: []DealTransform{
			&SetNOIGrowth{GrowthPct: decimal.NewFromInt(5)},
		},
	})

	// Exit templates
	registry.Register(Template{
		Name:        "cap_expansion_50",
		Description: "Expand the exit cap rate by 50 basis points (weaker sale)",
		Transforms: []DealTransform{
			&AdjustExitCapRate{DeltaPct: decimal.NewFromFloat(0.5)},
		},
	})

	registry.Register(Template{
		Name:        "cap_expansion_100",
		Description: "Expand the exit cap rate by 100 basis points (weaker sale)",
		Transforms: []DealTransform{
			&AdjustExitCapRate{DeltaPct: decimal.NewFromInt(1)},
		},
	})

	registry.Register(Template{
		Name:        "cap_compression_50",
		Description: "Compress the exit cap rate by 50 basis points (stronger sale)",
		Transforms: []DealTransform{
			&AdjustExitCapRate{DeltaPct: decimal.NewFromFloat(-0.5)},
		},
	})

	registry.Register(Template{
		Name:        "hold_7yr",
		Description: "Hold the deal for 7 years before sale",
		Transforms: []DealTransform{
			&SetHoldPeriod{Years: 7},
		},
	})

	registry.Register(Template{
		Name:        "hold_10yr",
		Description: "Hold the deal for 10 years before sale",
		Transforms: []DealTransform{
			&SetHoldPeriod{Years: 10},
		},
	})

	// Combination templates - common underwriting cases
	registry.Register(Template{
		Name:        "downside",
		Description: "Downside case: rates up 100bps, flat NOI, cap expands 100bps",
		Transforms: []DealTransform{
			&AdjustInterestRate{DeltaPct: decimal.NewFromInt(1)},
			&SetNOIGrowth{GrowthPct: decimal.Zero},
			&AdjustExitCapRate{DeltaPct: decimal.NewFromInt(1)},
		},
	})

	registry.Register(Template{
		Name:        "upside",
		Description: "Upside case: rates down 50bps, 5% NOI growth, cap compresses 50bps",
		Transforms: []DealTransform{
			&AdjustInterestRate{DeltaPct: decimal.NewFromFloat(-0.5)},
			&SetNOIGrowth{GrowthPct: decimal.NewFromInt(5)},
			&AdjustExitCapRate{DeltaPct: decimal.NewFromFloat(-0.5)},
		},
	})

	registry.Register(Template{
		Name:        "long_hold",
		Description: "Patient capital: hold 10 years with flat NOI",
		Transforms: []DealTransform{
			&SetHoldPeriod{Years: 10},
			&SetNOIGrowth{GrowthPct: decimal.Zero},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base deal
func ApplyTemplate(base *domain.DealConfig, template Template) (*domain.DealConfig, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available What-If Templates:\n\n")

	categories := map[string][]Template{
		"Financing":             {},
		"Operations":            {},
		"Exit Assumptions":      {},
		"Combination Scenarios": {},
	}

	for _, template := range registry.templates {
		name := template.Name
		if strings.HasPrefix(name, "rate_") {
			categories["Financing"] = append(categories["Financing"], template)
		} else if strings.HasPrefix(name, "flat_noi") || strings.HasPrefix(name, "noi_") {
			categories["Operations"] = append(categories["Operations"], template)
		} else if strings.HasPrefix(name, "cap_") || strings.HasPrefix(name, "hold_") {
			categories["Exit Assumptions"] = append(categories["Exit Assumptions"], template)
		} else {
			categories["Combination Scenarios"] = append(categories["Combination Scenarios"], template)
		}
	}

	for _, category := range []string{"Financing", "Operations", "Exit Assumptions", "Combination Scenarios"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ./crego termsheet --input deal.yaml --what-if rate_bump_100,flat_noi\n")
	sb.WriteString("  ./crego termsheet --input deal.yaml --what-if downside,upside\n")

	return sb.String()
}
