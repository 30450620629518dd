package calculations

import (
	"fmt"

	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// plan настраивает общий помесячный цикл для стратегий step-up и prepayment.
// Нулевое значение - постоянный платеж без досрочного погашения.
type plan struct {
	annualIncrease   decimal.Decimal
	prepaymentAmount decimal.Decimal
	prepaymentMonth  int
}

// RepaymentSchedule рассчитывает график с постоянным платежом на весь срок.
// Последний месяц забирает накопленную ошибку округления, остаток становится ровно 0.
func RepaymentSchedule(principal, annualRatePercent decimal.Decimal, tenureYears int, emi decimal.Decimal) (*CalculationResult, error) {
	if err := checkLoan(principal, annualRatePercent, tenureYears); err != nil {
		return nil, err
	}
	if err := checkInstallment(principal, annualRatePercent, emi); err != nil {
		return nil, err
	}

	schedule := amortize(principal, annualRatePercent, tenureYears, emi, plan{})
	return assembleResult(principal, annualRatePercent, emi, schedule), nil
}

// checkInstallment отклоняет платеж, который не уменьшает остаток
func checkInstallment(principal, annualRatePercent, emi decimal.Decimal) error {
	if !emi.IsPositive() {
		return fmt.Errorf("%w: платеж должен быть положительным", ErrInvalidLoanParameters)
	}
	firstInterest := utils.Round2(utils.Round2(principal).Mul(utils.MonthlyRate(annualRatePercent)))
	if utils.Round2(emi).LessThanOrEqual(firstInterest) {
		return fmt.Errorf("%w: платеж %s не покрывает проценты первого месяца %s",
			ErrInvalidLoanParameters, utils.Round2(emi).StringFixed(2), firstInterest.StringFixed(2))
	}
	return nil
}

// amortize проходит кредит помесячно. Каждая сумма сразу округляется до копеек,
// округленный остаток переходит в следующий месяц.
//
// Цикл заканчивается в конце срока или при полном погашении. Последняя строка
// всегда закрывает остаток, поэтому ее платеж может отличаться от обычного.
func amortize(principal, annualRatePercent decimal.Decimal, tenureYears int, emi decimal.Decimal, p plan) []MonthlyPayment {
	maxMonths := tenureYears * monthsPerYear
	rate := utils.MonthlyRate(annualRatePercent)

	balance := utils.Round2(principal)
	currentEMI := emi
	cumP := decimal.Zero
	cumI := decimal.Zero
	schedule := make([]MonthlyPayment, 0, maxMonths)

	for month := 1; month <= maxMonths && balance.IsPositive(); month++ {
		if month > 1 && (month-1)%monthsPerYear == 0 {
			currentEMI = currentEMI.Add(p.annualIncrease)
		}

		interest := utils.Round2(balance.Mul(rate))
		principalPart := utils.Round2(currentEMI.Sub(interest))
		payment := utils.Round2(currentEMI)

		if month == maxMonths || principalPart.GreaterThanOrEqual(balance) {
			principalPart = balance
			payment = principalPart.Add(interest)
		}

		balance = utils.Round2(balance.Sub(principalPart))
		cumP = utils.Round2(cumP.Add(principalPart))
		cumI = utils.Round2(cumI.Add(interest))

		// Досрочный платеж входит в строку своего месяца
		prepayment := decimal.Zero
		if month == p.prepaymentMonth && balance.IsPositive() {
			prepayment = decimal.Min(utils.Round2(p.prepaymentAmount), balance)
			balance = utils.Round2(balance.Sub(prepayment))
			cumP = utils.Round2(cumP.Add(prepayment))
		}

		schedule = append(schedule, MonthlyPayment{
			Month:               month,
			EMI:                 payment,
			PrincipalPayment:    principalPart,
			InterestPayment:     interest,
			Prepayment:          prepayment,
			RemainingBalance:    balance,
			CumulativePrincipal: cumP,
			CumulativeInterest:  cumI,
		})
	}

	return schedule
}
