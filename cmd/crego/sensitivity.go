package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/LaxBloxBoy2/crego/internal/config"
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/output"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [deal-file]",
	Short: "Test how hard each assumption moves the deal's returns",
	Long: `Sweep deal assumptions one at a time through the term sheet projection and
rank them by how far they swing the investor IRR.

Examples:
  # Sweep the exit cap rate
  crego sensitivity deal.yaml --parameter exit_cap_rate_pct:4.5-7.5:7

  # Sweep several assumptions at once
  crego sensitivity deal.yaml --parameter exit_cap_rate_pct:4.5-7.5:7 --parameter noi_growth_pct:0-6:7

  # Shorthand for a single exit cap sweep
  crego sensitivity deal.yaml --range 4.5-7.5 --steps 7

  # Use the predefined sweeps
  crego sensitivity deal.yaml --parameter-set common`,
	Args: cobra.ExactArgs(1),
	Run:  runSensitivityAnalysis,
}

var (
	sensitivityParameter    []string
	sensitivityRange        string
	sensitivitySteps        int
	sensitivityStructure    string
	sensitivityOutputFormat string
	sensitivityParameterSet string
)

func init() {
	sensitivityCmd.Flags().StringSliceVar(&sensitivityParameter, "parameter", []string{}, "Parameter to sweep (format: name:min-max:steps)")
	sensitivityCmd.Flags().StringVar(&sensitivityRange, "range", "", "Range for a single exit cap sweep (format: min-max)")
	sensitivityCmd.Flags().IntVar(&sensitivitySteps, "steps", 5, "Number of steps for the sweep")
	sensitivityCmd.Flags().StringVar(&sensitivityStructure, "structure", "", "Promote structure to project (default: first in the deal)")
	sensitivityCmd.Flags().StringVar(&sensitivityOutputFormat, "output", "table", "Output format (table, csv, json)")
	sensitivityCmd.Flags().StringVar(&sensitivityParameterSet, "parameter-set", "", "Use a predefined parameter set (common, critical)")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) {
	inputFile := args[0]

	parser := config.NewInputParser()
	deal, err := parser.LoadFromFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading deal: %v\n", err)
		os.Exit(1)
	}

	structure, err := deal.StructureByName(sensitivityStructure)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting structure: %v\n", err)
		os.Exit(1)
	}

	input, err := deal.BuildTermSheetInput(structure)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building projection input: %v\n", err)
		os.Exit(1)
	}

	var parameters []domain.SensitivityParameter
	switch {
	case sensitivityParameterSet != "":
		parameters = getPredefinedParameterSet(sensitivityParameterSet)
	case len(sensitivityParameter) > 0:
		parameters = parseCustomParameters(sensitivityParameter)
	case sensitivityRange != "":
		param, err := parseSingleParameter("exit_cap_rate_pct", sensitivityRange, sensitivitySteps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing parameter: %v\n", err)
			os.Exit(1)
		}
		parameters = []domain.SensitivityParameter{param}
	default:
		fmt.Fprintf(os.Stderr, "Must specify --parameter, --parameter-set, or --range\n")
		os.Exit(1)
	}

	analyzer := waterfall.NewAnalyzer()
	report, err := analyzer.Run(input, parameters)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running sensitivity analysis: %v\n", err)
		os.Exit(1)
	}

	formatter := output.NewSensitivityFormatter(sensitivityOutputFormat)
	rendered, err := formatter.FormatSensitivityReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(rendered)
}

func getPredefinedParameterSet(setName string) []domain.SensitivityParameter {
	switch setName {
	case "common":
		return domain.GetCommonParameters()
	case "critical":
		return []domain.SensitivityParameter{
			domain.ExitCapRateParam,
			domain.InterestRateParam,
			domain.NOIGrowthParam,
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown parameter set: %s\n", setName)
		os.Exit(1)
		return nil
	}
}

func parseCustomParameters(paramStrings []string) []domain.SensitivityParameter {
	parameters := make([]domain.SensitivityParameter, 0, len(paramStrings))

	for _, paramStr := range paramStrings {
		param, err := parseParameterString(paramStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing parameter '%s': %v\n", paramStr, err)
			os.Exit(1)
		}
		parameters = append(parameters, param)
	}

	return parameters
}

// parseParameterString parses a sweep in name:min-max:steps form.
func parseParameterString(paramStr string) (domain.SensitivityParameter, error) {
	parts := strings.Split(paramStr, ":")
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name:min-max:steps)", paramStr)
	}

	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %v", err)
	}

	return parseSingleParameter(parts[0], parts[1], steps)
}

// parseSingleParameter builds a sweep for one assumption. Known assumption
// names inherit their unit and description from the predefined sweeps;
// unknown names get a midpoint base value.
func parseSingleParameter(name, rangeStr string, steps int) (domain.SensitivityParameter, error) {
	minMax := strings.Split(rangeStr, "-")
	if len(minMax) != 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid range format: %s (expected min-max)", rangeStr)
	}

	minValue, err := parseDecimal(minMax[0])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid min value: %v", err)
	}

	maxValue, err := parseDecimal(minMax[1])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid max value: %v", err)
	}

	unit := "dollars"
	if strings.HasSuffix(name, "_pct") {
		unit = "percent"
	}

	param := domain.SensitivityParameter{
		Name:        name,
		MinValue:    minValue,
		MaxValue:    maxValue,
		Steps:       steps,
		BaseValue:   minValue.Add(maxValue).Div(decimal.NewFromInt(2)),
		Unit:        unit,
		Description: "Custom parameter",
	}

	for _, commonParam := range domain.GetCommonParameters() {
		if commonParam.Name == name {
			param.BaseValue = commonParam.BaseValue
			param.Unit = commonParam.Unit
			param.Description = commonParam.Description
			break
		}
	}

	return param, nil
}
