package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/LaxBloxBoy2/crego/internal/config"
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/output"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/LaxBloxBoy2/crego/internal/transform"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

var termsheetCmd = &cobra.Command{
	Use:   "termsheet [deal-file]",
	Short: "Project a term sheet from underwriting assumptions",
	Long: `Project deal returns forward from the term sheet assumptions: NOI growth,
level debt service, preferred return, promote splits, and a sale at the
exit cap rate net of the remaining loan balance.

Examples:
  # Project the deal as written
  crego termsheet deal.yaml

  # What if rates rise 100bp and the exit cap widens?
  crego termsheet deal.yaml --what-if rate_bump_100,cap_expansion_50

  # Set assumptions directly
  crego termsheet deal.yaml --set set_exit_cap:cap=6.0 --set set_hold:years=7

  # Show available what-if templates
  crego termsheet --list-templates`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTermsheet,
}

var (
	termsheetStructure     string
	termsheetFormat        string
	termsheetStrategy      string
	termsheetWhatIf        string
	termsheetSet           []string
	termsheetListTemplates bool
	termsheetDebug         bool
)

func init() {
	termsheetCmd.Flags().StringVar(&termsheetStructure, "structure", "", "Promote structure to project (default: first in the deal)")
	termsheetCmd.Flags().StringVarP(&termsheetFormat, "format", "f", "table", "Output format (table, csv, json)")
	termsheetCmd.Flags().StringVar(&termsheetStrategy, "strategy", tiers.StrategyCashYield, "Tier selection rule (cash_yield, trailing_irr)")
	termsheetCmd.Flags().StringVar(&termsheetWhatIf, "what-if", "", "Comma-separated what-if templates to apply before projecting")
	termsheetCmd.Flags().StringSliceVar(&termsheetSet, "set", []string{}, "Transform to apply (format: name:param=value)")
	termsheetCmd.Flags().BoolVar(&termsheetListTemplates, "list-templates", false, "List all available what-if templates")
	termsheetCmd.Flags().BoolVar(&termsheetDebug, "debug", false, "Enable debug output for projection steps")

	rootCmd.AddCommand(termsheetCmd)
}

func runTermsheet(cmd *cobra.Command, args []string) {
	if termsheetListTemplates {
		registry := transform.CreateBuiltInTemplates()
		fmt.Print(transform.GetTemplateHelp(registry))
		return
	}

	if len(args) == 0 {
		log.Fatal("deal file required for projection (use --list-templates to see available what-ifs)")
	}

	inputFile := args[0]

	parser := config.NewInputParser()
	deal, err := parser.LoadFromFile(inputFile)
	if err != nil {
		log.Fatal(err)
	}

	deal, err = applyWhatIfs(deal)
	if err != nil {
		log.Fatal(err)
	}

	structure, err := deal.StructureByName(termsheetStructure)
	if err != nil {
		log.Fatal(err)
	}

	input, err := deal.BuildTermSheetInput(structure)
	if err != nil {
		log.Fatal(err)
	}

	strategy, err := tiers.CreateStrategy(termsheetStrategy)
	if err != nil {
		log.Fatal(err)
	}

	projector := waterfall.NewTermSheetWithOptions(strategy, engineLogger(termsheetDebug))
	projection, err := projector.Project(input)
	if err != nil {
		log.Fatal(err)
	}

	formatter := output.NewProjectionFormatter(termsheetFormat)
	rendered, err := formatter.FormatProjection(projection)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(rendered)
}

// applyWhatIfs runs the deal through the requested templates and transform
// specs before projection. Templates apply first, then --set transforms, in
// the order given. The parsed deal is never mutated.
func applyWhatIfs(deal *domain.DealConfig) (*domain.DealConfig, error) {
	if termsheetWhatIf == "" && len(termsheetSet) == 0 {
		return deal, nil
	}

	var transforms []transform.DealTransform

	if termsheetWhatIf != "" {
		registry := transform.CreateBuiltInTemplates()
		for _, name := range transform.ParseTemplateList(termsheetWhatIf) {
			template, ok := registry.Get(name)
			if !ok {
				return nil, fmt.Errorf("unknown what-if template: %s (use --list-templates)", name)
			}
			transforms = append(transforms, template.Transforms...)
		}
	}

	specRegistry := transform.NewTransformRegistry()
	for _, spec := range termsheetSet {
		t, err := specRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}

	return transform.ApplyTransforms(deal, transforms)
}

// parseDecimal parses a decimal string
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
