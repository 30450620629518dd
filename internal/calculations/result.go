package calculations

import (
	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// assembleResult формирует сводку и годовые итоги графика.
// Срок определяется по длине графика.
func assembleResult(principal, annualRatePercent, monthlyEMI decimal.Decimal, schedule []MonthlyPayment) *CalculationResult {
	totalEMI := decimal.Zero
	totalInterest := decimal.Zero
	totalPrepayment := decimal.Zero
	for _, row := range schedule {
		totalEMI = totalEMI.Add(row.EMI)
		totalInterest = totalInterest.Add(row.InterestPayment)
		totalPrepayment = totalPrepayment.Add(row.Prepayment)
	}

	months := len(schedule)
	details := LoanDetails{
		Principal:       utils.Round2(principal),
		AnnualRate:      utils.Round2(annualRatePercent),
		TenureYears:     utils.Round2(decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(monthsPerYear))),
		TenureMonths:    months,
		MonthlyEMI:      utils.Round2(monthlyEMI),
		TotalAmount:     utils.Round2(totalEMI.Add(totalPrepayment)),
		TotalInterest:   utils.Round2(totalInterest),
		TotalPrepayment: utils.Round2(totalPrepayment),
	}

	return &CalculationResult{
		LoanDetails:     details,
		MonthlySchedule: schedule,
		YearlyBreakdown: YearlyBreakdownOf(schedule),
	}
}
