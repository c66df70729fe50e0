package waterfall

import (
	"fmt"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/LaxBloxBoy2/crego/internal/finance"
	"github.com/LaxBloxBoy2/crego/internal/tiers"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TermSheet projects a deal forward from underwriting assumptions: NOI
// compounding annually, level debt service from the amortization schedule,
// a preferred return off invested equity, promote splits on the excess, and
// a sale at the exit cap rate net of the actual remaining loan balance.
//
// Unlike the distribution engine, tier selection here is instantaneous by
// default: each year is judged on its own cash yield, which is how term
// sheets quote splits. The two rules disagree for the same deal and that
// difference is intentional; the projection names the rule it used.
type TermSheet struct {
	Strategy tiers.SelectionStrategy
	Logger   zerolog.Logger
}

// NewTermSheet creates a projector with the cash-yield selection rule and
// no logging.
func NewTermSheet() *TermSheet {
	return &TermSheet{
		Strategy: tiers.NewCashYieldStrategy(),
		Logger:   zerolog.Nop(),
	}
}

// NewTermSheetWithOptions creates a projector with an explicit selection
// strategy and logger.
func NewTermSheetWithOptions(strategy tiers.SelectionStrategy, logger zerolog.Logger) *TermSheet {
	return &TermSheet{Strategy: strategy, Logger: logger}
}

// Project runs the year-by-year projection. Year 1 operates at the initial
// NOI; growth compounds from year 2. The preferred return is paid to the
// investor side before any promote split; unpaid preferred does not accrue.
// Operating shortfalls and exit deficiencies are not charged back to either
// side.
func (ts *TermSheet) Project(input domain.TermSheetInput) (*domain.TermSheetProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	loan := input.Loan
	schedule, err := finance.BuildSchedule(loan.Principal, loan.AnnualRate(), loan.AmortizationYears, loan.Periods())
	if err != nil {
		return nil, err
	}
	payment := decimal.Zero
	if len(schedule) > 0 {
		payment = schedule[0].Payment
	}

	equity := input.EquityInvestment
	split := input.Split()
	growth := one.Add(domain.PercentToRate(input.GrowthPct()))
	prefDue := equity.Mul(domain.PercentToRate(input.PreferredReturnPct))

	ts.Logger.Debug().
		Str("deal", input.DealName).
		Str("strategy", ts.Strategy.Name()).
		Int("term_years", input.TermYears).
		Str("equity", equity.String()).
		Str("preferred_due", prefDue.String()).
		Msg("projecting term sheet")

	gpInitial := equity.Neg().Mul(split.GPPct).Div(domain.Hundred)
	lpInitial := equity.Neg().Sub(gpInitial)

	years := make([]domain.TermSheetYear, 0, input.TermYears)
	gpFlows := domain.CashFlowSeries{gpInitial}
	lpFlows := domain.CashFlowSeries{lpInitial}
	equityFlows := domain.CashFlowSeries{equity.Neg()}
	totalGP := decimal.Zero
	totalLP := decimal.Zero

	noi := input.InitialNOI
	totalPeriods := loan.AmortizationYears * loan.Periods()

	var saleProceeds, loanBalanceAtExit, netSaleProceeds decimal.Decimal

	for year := 1; year <= input.TermYears; year++ {
		if year > 1 {
			noi = noi.Mul(growth)
		}

		debtService := payment.Mul(decimal.NewFromInt(int64(periodsOwedInYear(year, loan.Periods(), totalPeriods))))
		operatingCF := noi.Sub(debtService)

		distributable := operatingCF
		netSale := decimal.Zero
		if year == input.TermYears {
			saleProceeds = noi.Div(domain.PercentToRate(input.ExitCapRatePct))
			loanBalanceAtExit = schedule.BalanceAfter(year * loan.Periods())
			netSale = saleProceeds.Sub(loanBalanceAtExit)
			netSaleProceeds = netSale
			distributable = distributable.Add(netSale)
		}

		equityFlows = append(equityFlows, distributable)
		snap := tiers.PeriodSnapshot{
			Period:           year,
			CashFlow:         distributable,
			EquityInvestment: equity,
			TrailingFlows:    equityFlows.DeepCopy(),
		}
		selection, err := ts.Strategy.SelectTier(input.Structure.Tiers, snap)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}

		prefPaid := decimal.Zero
		excess := decimal.Zero
		if distributable.IsPositive() {
			prefPaid = decimal.Min(distributable, prefDue)
			excess = distributable.Sub(prefPaid)
		}

		gpAmount := excess.Mul(selection.Tier.GPSplitPct).Div(domain.Hundred)
		lpAmount := prefPaid.Add(excess.Sub(gpAmount))
		totalGP = totalGP.Add(gpAmount)
		totalLP = totalLP.Add(lpAmount)
		gpFlows = append(gpFlows, gpAmount)
		lpFlows = append(lpFlows, lpAmount)

		cashYieldPct := domain.RateToPercent(distributable.Div(equity))

		ts.Logger.Debug().
			Int("year", year).
			Str("noi", noi.StringFixed(2)).
			Str("debt_service", debtService.StringFixed(2)).
			Str("distributable", distributable.StringFixed(2)).
			Int("tier", selection.Tier.Order).
			Str("gp", gpAmount.StringFixed(2)).
			Str("lp", lpAmount.StringFixed(2)).
			Msg("year projected")

		years = append(years, domain.TermSheetYear{
			Year:              year,
			NOI:               noi,
			DebtService:       debtService,
			CashFlowAfterDebt: operatingCF,
			CashYieldPct:      cashYieldPct,
			PreferredPayment:  prefPaid,
			ExcessCashFlow:    excess,
			TierOrder:         selection.Tier.Order,
			NetSaleProceeds:   netSale,
			GPDistribution:    gpAmount,
			LPDistribution:    lpAmount,
		})
	}

	summary := domain.ReturnsSummary{
		TotalDistributed: totalGP.Add(totalLP),
		TotalGP:          totalGP,
		TotalLP:          totalLP,
		GPEquityShare:    split.GPPct,
		LPEquityShare:    split.LPPct,
	}
	summary.GPIRRPct, err = sideIRR(gpFlows)
	if err != nil {
		return nil, fmt.Errorf("gp returns: %w", err)
	}
	summary.LPIRRPct, err = sideIRR(lpFlows)
	if err != nil {
		return nil, fmt.Errorf("lp returns: %w", err)
	}
	summary.GPEquityMultiple = equityMultiple(totalGP, gpInitial)
	summary.LPEquityMultiple = equityMultiple(totalLP, lpInitial)

	return &domain.TermSheetProjection{
		DealName:          input.DealName,
		StructureName:     input.Structure.Name,
		StrategyUsed:      ts.Strategy.Name(),
		Years:             years,
		SaleProceeds:      saleProceeds,
		LoanBalanceAtExit: loanBalanceAtExit,
		NetSaleProceeds:   netSaleProceeds,
		Summary:           summary,
	}, nil
}

// periodsOwedInYear counts the payments actually due in the given year:
// every payment until the loan amortizes, none after.
func periodsOwedInYear(year, periodsPerYear, totalPeriods int) int {
	start := (year - 1) * periodsPerYear
	if start >= totalPeriods {
		return 0
	}
	owed := totalPeriods - start
	if owed > periodsPerYear {
		return periodsPerYear
	}
	return owed
}

var one = decimal.NewFromInt(1)
