package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/LaxBloxBoy2/crego/internal/compare"
	"github.com/LaxBloxBoy2/crego/internal/config"
	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/finance"
	"github.com/LaxBloxBoy2/crego/internal/output"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/LaxBloxBoy2/crego/internal/waterfall"
)

// overrideLoanTerms applies --principal/--rate/--years/--periods flags over
// loan terms loaded from a deal file, if any. Rates are in percent.
func overrideLoanTerms(cmd *cobra.Command, loan *domain.LoanTerms) {
	if raw, _ := cmd.Flags().GetString("principal"); raw != "" {
		value, err := parseDecimal(raw)
		if err != nil {
			log.Fatalf("invalid --principal value: %v", err)
		}
		loan.Principal = value
	}
	if raw, _ := cmd.Flags().GetString("rate"); raw != "" {
		value, err := parseDecimal(raw)
		if err != nil {
			log.Fatalf("invalid --rate value: %v", err)
		}
		loan.InterestRatePct = value
	}
	if years, _ := cmd.Flags().GetInt("years"); years > 0 {
		loan.AmortizationYears = years
	}
	if periods, _ := cmd.Flags().GetInt("periods"); periods > 0 {
		loan.PeriodsPerYear = periods
	}
}

// engineLogger returns the logger wired into the calculation engines. Debug
// mode traces every tier selection and projection step to stderr.
func engineLogger(debugMode bool) zerolog.Logger {
	if !debugMode {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "crego %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

var rootCmd = &cobra.Command{
	Use:   "crego",
	Short: "CRE deal returns calculator CLI",
	Long:  "Waterfall distributions, term sheet projections, and debt sizing for commercial real estate deals",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [deal-file]",
	Short: "Run the deal's cash flows through a promote waterfall",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		deal, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		structureName, _ := cmd.Flags().GetString("structure")
		structure, err := deal.StructureByName(structureName)
		if err != nil {
			log.Fatal(err)
		}

		strategyName, _ := cmd.Flags().GetString("strategy")
		strategy, err := tiers.CreateStrategy(strategyName)
		if err != nil {
			log.Fatal(err)
		}

		debugMode, _ := cmd.Flags().GetBool("debug")
		engine := waterfall.NewEngineWithOptions(strategy, engineLogger(debugMode))

		result, err := engine.Run(structure, deal.CashFlows, deal.Split())
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")

		// Get the formatter and write to stdout instead of file
		if f := output.GetFormatterByName(outputFormat); f != nil {
			data, err := f.Format(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(string(data))
		} else {
			// Fall back to GenerateReport so unknown names get its error
			if err := output.GenerateReport(result, outputFormat); err != nil {
				log.Fatal(err)
			}
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [deal-file]",
	Short: "Validate a deal file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		_, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Configuration file %s is valid\n", inputFile)
	},
}

var sizeDebtCmd = &cobra.Command{
	Use:   "size-debt [deal-file]",
	Short: "Size the maximum supportable loan from NOI and a DSCR target",
	Long: `Size the largest loan the property's net operating income can support at the
target debt service coverage ratio.

With a deal file, the debt_sizing section supplies NOI and the DSCR target and
the loan section supplies rate and amortization; flags override. Without a
deal file, --noi, --dscr, --rate, and --years are required.

Examples:
  crego size-debt deal.yaml
  crego size-debt deal.yaml --dscr 1.35
  crego size-debt --noi 300000 --rate 6.5 --dscr 1.25 --years 30`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var deal *domain.DealConfig
		if len(args) == 1 {
			parser := config.NewInputParser()
			loaded, err := parser.LoadFromFile(args[0])
			if err != nil {
				log.Fatal(err)
			}
			deal = loaded
		}

		loan := domain.LoanTerms{}
		if deal != nil {
			loan = deal.Loan
		}
		overrideLoanTerms(cmd, &loan)
		if deal == nil && (!cmd.Flags().Changed("rate") || !cmd.Flags().Changed("years")) {
			log.Fatal("without a deal file, --rate and --years are required")
		}

		noiStr, _ := cmd.Flags().GetString("noi")
		dscrStr, _ := cmd.Flags().GetString("dscr")

		var noi decimal.Decimal
		var err error
		switch {
		case noiStr != "":
			noi, err = parseDecimal(noiStr)
			if err != nil {
				log.Fatalf("invalid --noi value: %v", err)
			}
		case deal != nil && deal.DebtSizing != nil:
			noi = deal.DebtSizing.NOI
		default:
			log.Fatal("no NOI available; supply --noi or a deal file with a debt_sizing section")
		}

		var dscr decimal.Decimal
		switch {
		case dscrStr != "":
			dscr, err = parseDecimal(dscrStr)
			if err != nil {
				log.Fatalf("invalid --dscr value: %v", err)
			}
		case deal != nil && deal.DebtSizing != nil:
			dscr = deal.DebtSizing.DSCRTarget
		default:
			log.Fatal("no DSCR target available; supply --dscr or a deal file with a debt_sizing section")
		}

		result, err := finance.SizeDebt(noi, loan.AnnualRate(), dscr, loan.AmortizationYears)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println("DEBT SIZING ANALYSIS")
		fmt.Println("====================")
		if deal != nil {
			fmt.Printf("Deal: %s\n", deal.DealName)
		}
		fmt.Printf("NOI: $%s | DSCR Target: %sx | Rate: %s%% | Amortization: %d years\n\n",
			noi.StringFixed(2), dscr.StringFixed(2),
			loan.InterestRatePct.StringFixed(2), loan.AmortizationYears)

		fmt.Printf("Maximum Loan Amount: $%s\n", result.MaxLoanAmount.StringFixed(2))
		fmt.Printf("Mortgage Constant: %s%%\n", result.MortgageConstant.Mul(decimal.NewFromInt(100)).StringFixed(3))
		fmt.Printf("Supportable Annual Debt Service: $%s\n", result.MaxAnnualDebtService.StringFixed(2))
		fmt.Printf("Monthly Payment at Maximum: $%s\n", result.MonthlyPayment.StringFixed(2))
		fmt.Printf("Annual Payment at Maximum: $%s\n", result.AnnualPayment.StringFixed(2))

		if loan.Principal.IsPositive() {
			headroom := result.MaxLoanAmount.Sub(loan.Principal)
			fmt.Println()
			if headroom.IsNegative() {
				fmt.Printf("Current principal $%s exceeds the supportable maximum by $%s\n",
					loan.Principal.StringFixed(2), headroom.Neg().StringFixed(2))
			} else {
				fmt.Printf("Current principal $%s leaves $%s of headroom\n",
					loan.Principal.StringFixed(2), headroom.StringFixed(2))
			}
		}
	},
}

var amortizeCmd = &cobra.Command{
	Use:   "amortize [deal-file]",
	Short: "Compute the loan's periodic payment and amortization schedule",
	Long: `Compute the amortizing payment for a loan, from a deal file or from
--principal/--rate/--years flags. Flags override the deal file's loan terms.

Examples:
  crego amortize deal.yaml
  crego amortize deal.yaml --schedule
  crego amortize --principal 1000000 --rate 6 --years 30`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loan := domain.LoanTerms{}
		if len(args) == 1 {
			parser := config.NewInputParser()
			deal, err := parser.LoadFromFile(args[0])
			if err != nil {
				log.Fatal(err)
			}
			loan = deal.Loan
		}
		overrideLoanTerms(cmd, &loan)

		schedule, err := finance.BuildSchedule(loan.Principal, loan.AnnualRate(), loan.AmortizationYears, loan.Periods())
		if err != nil {
			log.Fatal(err)
		}
		if len(schedule) == 0 {
			log.Fatal("amortization schedule is empty")
		}

		payment := schedule[0].Payment
		totalInterest := decimal.Zero
		for _, period := range schedule {
			totalInterest = totalInterest.Add(period.Interest)
		}

		fmt.Println("AMORTIZATION SUMMARY")
		fmt.Println("====================")
		fmt.Printf("Principal: $%s at %s%% over %d years (%d payments/year)\n",
			loan.Principal.StringFixed(2), loan.InterestRatePct.StringFixed(2),
			loan.AmortizationYears, loan.Periods())
		fmt.Printf("Periodic Payment: $%s\n", payment.StringFixed(2))
		fmt.Printf("Annual Debt Service: $%s\n",
			payment.Mul(decimal.NewFromInt(int64(loan.Periods()))).StringFixed(2))
		fmt.Printf("Total Interest Over Term: $%s\n", totalInterest.StringFixed(2))

		showSchedule, _ := cmd.Flags().GetBool("schedule")
		if showSchedule {
			fmt.Println()
			fmt.Printf("%-8s %-14s %-14s %-14s %-14s\n", "Period", "Payment", "Interest", "Principal", "Balance")
			for _, period := range schedule {
				fmt.Printf("%-8d %-14s %-14s %-14s %-14s\n",
					period.Period,
					period.Payment.StringFixed(2),
					period.Interest.StringFixed(2),
					period.Principal.StringFixed(2),
					period.RemainingBalance.StringFixed(2))
			}
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [deal-file]",
	Short: "Compare promote structures over the same cash flows",
	Long: `Compare a base promote structure against alternatives. Every structure sees
the same cash flows and equity split; only the promote ladder changes.

Examples:
  crego compare deal.yaml
  crego compare deal.yaml --base "Standard Promote" --with "Aggressive Promote,Flat 80/20"
  crego compare deal.yaml --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		deal, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		baseName, _ := cmd.Flags().GetString("base")
		withStr, _ := cmd.Flags().GetString("with")
		outputFormat, _ := cmd.Flags().GetString("format")

		var alternatives []string
		if withStr != "" {
			for _, name := range strings.Split(withStr, ",") {
				if trimmed := strings.TrimSpace(name); trimmed != "" {
					alternatives = append(alternatives, trimmed)
				}
			}
		}

		strategyName, _ := cmd.Flags().GetString("strategy")
		strategy, err := tiers.CreateStrategy(strategyName)
		if err != nil {
			log.Fatal(err)
		}

		debugMode, _ := cmd.Flags().GetBool("debug")
		engine := waterfall.NewEngineWithOptions(strategy, engineLogger(debugMode))
		compareEngine := compare.NewCompareEngine(engine)

		comparisonSet, err := compareEngine.Compare(deal, compare.CompareOptions{
			BaseStructureName: baseName,
			AlternativeNames:  alternatives,
		})
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}

		// Set config path for display
		comparisonSet.ConfigPath = inputFile

		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			rendered, err := formatter.Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Print(rendered)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			rendered, err := formatter.Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Print(rendered)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Print(formatter.Format(comparisonSet))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init [deal-file]",
	Short: "Create a starter deal file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := "deal.yaml"
		if len(args) > 0 {
			filename = args[0]
		}

		if fileExists(filename) {
			log.Fatalf("%s already exists; refusing to overwrite", filename)
		}

		if err := os.WriteFile(filename, []byte(starterDeal), 0644); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Wrote starter deal to %s\n", filename)
		fmt.Printf("Edit the assumptions, then run: crego analyze %s\n", filename)
	},
}

// starterDeal is the template written by the init command. Rates are in
// percent (6.5 means 6.5%), amounts in dollars.
const starterDeal = `deal_name: "Maple Street Apartments"

loan:
  principal: 1000000
  interest_rate_pct: 6.5
  amortization_years: 30

equity_investment: 500000

equity_split:
  gp_pct: 50
  lp_pct: 50

preferred_return_pct: 8

promote_structures:
  - name: "Standard Promote"
    tiers:
      - order: 1
        irr_hurdle_pct: 0
        gp_split_pct: 20
        lp_split_pct: 80
      - order: 2
        irr_hurdle_pct: 8
        gp_split_pct: 30
        lp_split_pct: 70
      - order: 3
        irr_hurdle_pct: 12
        gp_split_pct: 40
        lp_split_pct: 60

# Period 0 is the equity going out the door; later periods are distributions.
cash_flows: [-500000, 60000, 65000, 70000, 75000, 680000]

term_sheet:
  term_years: 5
  initial_noi: 180000
  noi_growth_pct: 3
  exit_cap_rate_pct: 5.5

debt_sizing:
  noi: 180000
  dscr_target: 1.25
`

func init() {
	analyzeCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, html, json, csv, detailed-csv)")
	analyzeCmd.Flags().String("structure", "", "Promote structure to run (default: first in the deal)")
	analyzeCmd.Flags().String("strategy", tiers.StrategyTrailingIRR, "Tier selection rule (trailing_irr, cash_yield)")
	analyzeCmd.Flags().Bool("debug", false, "Enable debug output for tier selection")

	// Debt sizing command flags
	sizeDebtCmd.Flags().String("noi", "", "Net operating income (overrides the deal file)")
	sizeDebtCmd.Flags().String("dscr", "", "DSCR target (overrides the deal file)")
	sizeDebtCmd.Flags().String("rate", "", "Interest rate in percent, 6.5 means 6.5% (overrides the deal file)")
	sizeDebtCmd.Flags().Int("years", 0, "Amortization period in years (overrides the deal file)")

	// Amortization command flags
	amortizeCmd.Flags().String("principal", "", "Loan principal (overrides the deal file)")
	amortizeCmd.Flags().String("rate", "", "Interest rate in percent, 6.5 means 6.5% (overrides the deal file)")
	amortizeCmd.Flags().Int("years", 0, "Amortization period in years (overrides the deal file)")
	amortizeCmd.Flags().Int("periods", 0, "Payments per year (default 12)")
	amortizeCmd.Flags().Bool("schedule", false, "Print the full period-by-period schedule")

	// Compare command flags
	compareCmd.Flags().String("base", "", "Base structure name to compare against (default: first in the deal)")
	compareCmd.Flags().String("with", "", "Comma-separated structure names to compare (default: every other structure)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().String("strategy", tiers.StrategyTrailingIRR, "Tier selection rule (trailing_irr, cash_yield)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for tier selection")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sizeDebtCmd)
	rootCmd.AddCommand(amortizeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
