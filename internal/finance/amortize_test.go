package finance

import (
	"testing"

	"github.com/LaxBloxBoy2/crego/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodicPayment_StandardLoan(t *testing.T) {
	// $1M at 6% over 30 years, monthly: the canonical underwriting check
	payment, err := PeriodicPayment(
		decimal.NewFromInt(1000000),
		decimal.NewFromFloat(0.06),
		30, 12,
	)
	require.NoError(t, err)
	assert.Equal(t, "5995.51", payment.StringFixed(2), "Monthly payment should match the standard amortization formula")
}

func TestPeriodicPayment_ZeroRate(t *testing.T) {
	payment, err := PeriodicPayment(
		decimal.NewFromInt(120000),
		decimal.Zero,
		10, 12,
	)
	require.NoError(t, err)
	assert.True(t, payment.Equal(decimal.NewFromInt(1000)),
		"Zero rate should degenerate to straight-line principal / n, got %s", payment)
}

func TestPeriodicPayment_InvalidInputs(t *testing.T) {
	testCases := []struct {
		desc      string
		principal decimal.Decimal
		rate      decimal.Decimal
		years     int
		periods   int
	}{
		{"negative principal", decimal.NewFromInt(-1), decimal.NewFromFloat(0.06), 30, 12},
		{"negative rate", decimal.NewFromInt(1000000), decimal.NewFromFloat(-0.01), 30, 12},
		{"zero years", decimal.NewFromInt(1000000), decimal.NewFromFloat(0.06), 0, 12},
		{"negative years", decimal.NewFromInt(1000000), decimal.NewFromFloat(0.06), -5, 12},
		{"zero periods", decimal.NewFromInt(1000000), decimal.NewFromFloat(0.06), 30, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := PeriodicPayment(tc.principal, tc.rate, tc.years, tc.periods)
			require.Error(t, err)
			var invalidErr *domain.InvalidInputError
			assert.ErrorAs(t, err, &invalidErr, "Rejections must be InvalidInputError")
		})
	}
}

func TestMortgageConstant(t *testing.T) {
	constant, err := MortgageConstant(decimal.NewFromFloat(0.06), 30)
	require.NoError(t, err)

	// The constant annualizes the monthly payment per dollar of loan
	monthly, err := PeriodicPayment(decimal.NewFromInt(1), decimal.NewFromFloat(0.06), 30, 12)
	require.NoError(t, err)
	assert.True(t, constant.Equal(monthly.Mul(decimal.NewFromInt(12))))

	// Zero rate: a dollar repaid over 30 years costs 1/30 per year
	flat, err := MortgageConstant(decimal.Zero, 30)
	require.NoError(t, err)
	assert.Equal(t, "0.0333", flat.StringFixed(4))

	_, err = MortgageConstant(decimal.NewFromFloat(0.06), 0)
	assert.Error(t, err, "Zero amortization years must be rejected")
}

func TestBuildSchedule_FullyAmortizes(t *testing.T) {
	schedule, err := BuildSchedule(
		decimal.NewFromInt(1000000),
		decimal.NewFromFloat(0.06),
		30, 12,
	)
	require.NoError(t, err)
	require.Len(t, schedule, 360)

	// First period interest on $1M at 0.5%/month
	assert.True(t, schedule[0].Interest.Equal(decimal.NewFromInt(5000)),
		"First period interest should be balance times periodic rate, got %s", schedule[0].Interest)

	// Paying the level payment for every period retires the loan
	final := schedule.BalanceAfter(360)
	assert.True(t, final.Abs().LessThan(decimal.New(1, -6)),
		"Final balance should be within 1e-6 of zero, got %s", final)

	// Principal portions grow while interest portions shrink
	assert.True(t, schedule[359].Principal.GreaterThan(schedule[0].Principal))
	assert.True(t, schedule[359].Interest.LessThan(schedule[0].Interest))
}

func TestBuildSchedule_ZeroRate(t *testing.T) {
	schedule, err := BuildSchedule(decimal.NewFromInt(1200), decimal.Zero, 1, 12)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	for _, period := range schedule {
		assert.True(t, period.Interest.IsZero())
		assert.True(t, period.Principal.Equal(decimal.NewFromInt(100)))
	}
	assert.True(t, schedule.BalanceAfter(12).IsZero())
}

func TestAnnualDebtService(t *testing.T) {
	loan := domain.LoanTerms{
		Principal:         decimal.NewFromInt(1000000),
		InterestRatePct:   decimal.NewFromInt(6),
		AmortizationYears: 30,
	}
	annual, err := AnnualDebtService(loan)
	require.NoError(t, err)
	assert.Equal(t, "71946.06", annual.StringFixed(2), "Twelve monthly payments of 5995.505")
}
