package calculations

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StepUpSchedule начинает со стандартного платежа и увеличивает его на
// annualIncrease в начале каждого года, кроме первого. График может оказаться
// короче запрошенного срока.
func StepUpSchedule(principal, annualRatePercent decimal.Decimal, tenureYears int, annualIncrease decimal.Decimal) (*CalculationResult, error) {
	if annualIncrease.IsNegative() {
		return nil, fmt.Errorf("%w: ежегодное увеличение не может быть отрицательным", ErrInvalidLoanParameters)
	}

	initialEMI, err := StandardEMI(principal, annualRatePercent, tenureYears)
	if err != nil {
		return nil, err
	}

	schedule := amortize(principal, annualRatePercent, tenureYears, initialEMI, plan{annualIncrease: annualIncrease})
	return assembleResult(principal, annualRatePercent, initialEMI, schedule), nil
}
