package calculations

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PrepaymentSchedule рассчитывает график со стандартным платежом и досрочным
// погашением amount в конце года prepaymentYear. Со следующего месяца проценты
// начисляются на уменьшенный остаток.
func PrepaymentSchedule(principal, annualRatePercent decimal.Decimal, tenureYears int,
	amount decimal.Decimal, prepaymentYear int) (*CalculationResult, error) {

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: сумма досрочного погашения должна быть положительной", ErrInvalidLoanParameters)
	}
	if prepaymentYear < 1 || (tenureYears > 0 && prepaymentYear > tenureYears) {
		return nil, fmt.Errorf("%w: год досрочного погашения %d вне диапазона [1; %d]",
			ErrInvalidLoanParameters, prepaymentYear, tenureYears)
	}

	standardEMI, err := StandardEMI(principal, annualRatePercent, tenureYears)
	if err != nil {
		return nil, err
	}

	schedule := amortize(principal, annualRatePercent, tenureYears, standardEMI, plan{
		prepaymentAmount: amount,
		prepaymentMonth:  prepaymentYear * monthsPerYear,
	})
	return assembleResult(principal, annualRatePercent, standardEMI, schedule), nil
}
