package calculations

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// checkScheduleInvariants проверяет свойства, общие для графика любой стратегии
func checkScheduleInvariants(t *testing.T, result *CalculationResult, principal decimal.Decimal) {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.MonthlySchedule)

	paid := decimal.Zero
	interest := decimal.Zero
	totalEMI := decimal.Zero
	prepaid := decimal.Zero
	previousBalance := principal
	for i, row := range result.MonthlySchedule {
		require.Equal(t, i+1, row.Month, "months must be consecutive")
		assert.True(t, row.RemainingBalance.LessThanOrEqual(previousBalance),
			"balance increased at month %d: %s > %s", row.Month, row.RemainingBalance, previousBalance)
		assert.False(t, row.RemainingBalance.IsNegative(), "negative balance at month %d", row.Month)
		assert.True(t, row.PrincipalPayment.Add(row.InterestPayment).Equal(row.EMI),
			"principal + interest != emi at month %d", row.Month)

		paid = paid.Add(row.PrincipalPayment).Add(row.Prepayment)
		interest = interest.Add(row.InterestPayment)
		totalEMI = totalEMI.Add(row.EMI)
		prepaid = prepaid.Add(row.Prepayment)
		assert.True(t, paid.Equal(row.CumulativePrincipal), "cumulative principal drifted at month %d", row.Month)
		assert.True(t, interest.Equal(row.CumulativeInterest), "cumulative interest drifted at month %d", row.Month)
		previousBalance = row.RemainingBalance
	}

	last := result.MonthlySchedule[len(result.MonthlySchedule)-1]
	assert.True(t, last.RemainingBalance.IsZero(), "final balance must be zero, got %s", last.RemainingBalance)
	assert.True(t, paid.Equal(principal.Round(2)), "principal repaid %s != %s", paid, principal)

	details := result.LoanDetails
	assert.Equal(t, len(result.MonthlySchedule), details.TenureMonths)
	assert.True(t, details.TotalInterest.Equal(interest))
	assert.True(t, details.TotalPrepayment.Equal(prepaid))
	assert.True(t, details.TotalAmount.Equal(totalEMI.Add(prepaid)))
	assert.True(t, details.TotalAmount.Equal(principal.Round(2).Add(details.TotalInterest)),
		"total amount %s != principal + interest %s", details.TotalAmount, details.TotalInterest)
}
