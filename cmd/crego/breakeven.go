package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LaxBloxBoy2/crego/internal/breakeven"
	"github.com/LaxBloxBoy2/crego/internal/config"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

var (
	breakEvenAssumption string
	breakEvenTargetIRR  string
	breakEvenBounds     string
	breakEvenStructure  string
	breakEvenFormat     string
	breakEvenStrategy   string
	breakEvenDebug      bool
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [deal-file]",
	Short: "Solve the assumption value needed to hit a target LP IRR",
	Long: `Run the term sheet backward: given the LP IRR an investor needs, solve the
exit cap rate, initial NOI, interest rate, or NOI growth that produces it.
With --assumption all, every lever is solved and ranked by how far it has
to move.

Examples:
  crego break-even deal.yaml --target-irr 15
  crego break-even deal.yaml --target-irr 15 --assumption initial_noi
  crego break-even deal.yaml --target-irr 18 --assumption all
  crego break-even deal.yaml --target-irr 15 --bounds 4-9 --format json`,
	Args: cobra.ExactArgs(1),
	Run:  runBreakEven,
}

func init() {
	breakEvenCmd.Flags().StringVar(&breakEvenAssumption, "assumption", string(breakeven.TargetExitCapRate),
		"Assumption to solve (exit_cap_rate_pct, initial_noi, interest_rate_pct, noi_growth_pct, all)")
	breakEvenCmd.Flags().StringVar(&breakEvenTargetIRR, "target-irr", "",
		"Target LP IRR in percent, 15 means 15% (required)")
	breakEvenCmd.Flags().StringVar(&breakEvenBounds, "bounds", "",
		"Search bounds as min-max, e.g. 4-9 (default: per-assumption)")
	breakEvenCmd.Flags().StringVar(&breakEvenStructure, "structure", "",
		"Promote structure to project (default: first in the deal)")
	breakEvenCmd.Flags().StringVarP(&breakEvenFormat, "format", "f", "table", "Output format (table, json)")
	breakEvenCmd.Flags().StringVar(&breakEvenStrategy, "strategy", tiers.StrategyCashYield,
		"Tier selection rule (cash_yield, trailing_irr)")
	breakEvenCmd.Flags().BoolVar(&breakEvenDebug, "debug", false, "Trace solver iterations")

	rootCmd.AddCommand(breakEvenCmd)
}

func runBreakEven(cmd *cobra.Command, args []string) {
	if breakEvenTargetIRR == "" {
		log.Fatal("--target-irr is required (LP IRR in percent, e.g. 15)")
	}
	targetIRR, err := parseDecimal(breakEvenTargetIRR)
	if err != nil {
		log.Fatalf("invalid --target-irr value: %v", err)
	}

	parser := config.NewInputParser()
	deal, err := parser.LoadFromFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	structure, err := deal.StructureByName(breakEvenStructure)
	if err != nil {
		log.Fatal(err)
	}
	input, err := deal.BuildTermSheetInput(structure)
	if err != nil {
		log.Fatal(err)
	}

	strategy, err := tiers.CreateStrategy(breakEvenStrategy)
	if err != nil {
		log.Fatal(err)
	}

	solver := breakeven.NewSolver(
		waterfall.NewTermSheetWithOptions(strategy, engineLogger(breakEvenDebug)),
		breakeven.DefaultSolverOptions(),
	)
	solver.Logger = engineLogger(breakEvenDebug)

	req := breakeven.Request{Input: input, TargetLPIRRPct: targetIRR}

	if breakEvenAssumption == "all" {
		if breakEvenBounds != "" {
			log.Fatal("--bounds applies to a single assumption, not --assumption all")
		}
		multi, err := solver.SolveEach(req, nil)
		if err != nil {
			log.Fatal(err)
		}

		switch breakEvenFormat {
		case "json":
			rendered, err := breakeven.JSONFormatter{Pretty: true}.FormatMulti(multi)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(rendered)
		case "table", "console", "":
			fmt.Print(breakeven.TableFormatter{}.FormatMulti(multi))
		default:
			log.Fatalf("Unknown output format: %s (valid: table, json)", breakEvenFormat)
		}
		return
	}

	req.Target = breakeven.Target(breakEvenAssumption)
	if breakEvenBounds != "" {
		bounds, err := parseBounds(breakEvenBounds)
		if err != nil {
			log.Fatal(err)
		}
		req.Bounds = bounds
	}

	result, err := solver.Solve(req)
	if err != nil {
		log.Fatal(err)
	}

	switch breakEvenFormat {
	case "json":
		rendered, err := breakeven.JSONFormatter{Pretty: true}.Format(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(rendered)
	case "table", "console", "":
		fmt.Print(breakeven.TableFormatter{}.Format(result))
	default:
		log.Fatalf("Unknown output format: %s (valid: table, json)", breakEvenFormat)
	}
}

// parseBounds parses a min-max pair like "4.5-9".
func parseBounds(s string) (breakeven.Bounds, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return breakeven.Bounds{}, fmt.Errorf("invalid bounds format: %s (expected min-max, e.g. 4-9)", s)
	}
	min, err := parseDecimal(strings.TrimSpace(parts[0]))
	if err != nil {
		return breakeven.Bounds{}, fmt.Errorf("invalid bounds minimum %q: %w", parts[0], err)
	}
	max, err := parseDecimal(strings.TrimSpace(parts[1]))
	if err != nil {
		return breakeven.Bounds{}, fmt.Errorf("invalid bounds maximum %q: %w", parts[1], err)
	}
	return breakeven.Bounds{Min: min, Max: max}, nil
}
