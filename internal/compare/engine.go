package compare

import (
	"fmt"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

// CompareEngine runs a deal's cash flows through several promote structures
// and lines the outcomes up against a base structure.
type CompareEngine struct {
	WaterfallEngine   *waterfall.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a comparison engine over the given waterfall
// engine.
func NewCompareEngine(engine *waterfall.Engine) *CompareEngine {
	return &CompareEngine{
		WaterfallEngine:   engine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior.
type CompareOptions struct {
	BaseStructureName string   // Base structure to compare against; empty selects the deal's first
	AlternativeNames  []string // Structures to compare; empty compares every other structure in the deal
}

// Compare runs the deal under the base structure and each alternative. Every
// structure sees the same cash flows and equity split; only the promote
// ladder changes.
func (ce *CompareEngine) Compare(config *domain.DealConfig, options CompareOptions) (*ComparisonSet, error) {
	base, err := config.StructureByName(options.BaseStructureName)
	if err != nil {
		return nil, err
	}

	split := config.Split()

	baseRun, err := ce.WaterfallEngine.Run(base, config.CashFlows, split)
	if err != nil {
		return nil, fmt.Errorf("base structure %s: %w", base.Name, err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRun)

	alternativeNames := options.AlternativeNames
	if len(alternativeNames) == 0 {
		for _, structure := range config.Structures {
			if structure.Name != base.Name {
				alternativeNames = append(alternativeNames, structure.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, name := range alternativeNames {
		structure, err := config.StructureByName(name)
		if err != nil {
			return nil, err
		}

		run, err := ce.WaterfallEngine.Run(structure, config.CashFlows, split)
		if err != nil {
			return nil, fmt.Errorf("structure %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(run)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		DealName:           config.DealName,
		BaseStructureName:  base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
