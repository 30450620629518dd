package calculations

import (
	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// YearlyBreakdownOf группирует помесячный график по годам.
// Если график заканчивается в середине года, последний год неполный.
func YearlyBreakdownOf(schedule []MonthlyPayment) []YearlyBreakdown {
	years := (len(schedule) + monthsPerYear - 1) / monthsPerYear
	breakdown := make([]YearlyBreakdown, 0, years)

	for year := 1; year <= years; year++ {
		start := (year - 1) * monthsPerYear
		end := min(start+monthsPerYear, len(schedule))
		bucket := schedule[start:end]

		entry := YearlyBreakdown{
			Year:             year,
			TotalEMI:         decimal.Zero,
			TotalPrincipal:   decimal.Zero,
			TotalInterest:    decimal.Zero,
			TotalPrepayment:  decimal.Zero,
			RemainingBalance: decimal.Zero,
		}
		for _, row := range bucket {
			entry.TotalEMI = entry.TotalEMI.Add(row.EMI)
			entry.TotalPrincipal = entry.TotalPrincipal.Add(row.PrincipalPayment)
			entry.TotalInterest = entry.TotalInterest.Add(row.InterestPayment)
			entry.TotalPrepayment = entry.TotalPrepayment.Add(row.Prepayment)
		}
		entry.TotalEMI = utils.Round2(entry.TotalEMI)
		entry.TotalPrincipal = utils.Round2(entry.TotalPrincipal)
		entry.TotalInterest = utils.Round2(entry.TotalInterest)
		entry.TotalPrepayment = utils.Round2(entry.TotalPrepayment)
		if len(bucket) > 0 {
			entry.RemainingBalance = bucket[len(bucket)-1].RemainingBalance
		}

		breakdown = append(breakdown, entry)
	}

	return breakdown
}
