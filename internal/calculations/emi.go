package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// StandardEMI рассчитывает аннуитетный ежемесячный платеж без округления
func StandardEMI(principal, annualRatePercent decimal.Decimal, tenureYears int) (decimal.Decimal, error) {
	if err := checkLoan(principal, annualRatePercent, tenureYears); err != nil {
		return decimal.Zero, err
	}

	n := tenureYears * monthsPerYear
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))), nil
	}

	// P*r / (1 - (1+r)^-n); log1p/expm1 сохраняют точность при r, близком к нулю
	r := annualRatePercent.InexactFloat64() / 100.0 / 12.0
	discount := -math.Expm1(-float64(n) * math.Log1p(r))
	emi := principal.InexactFloat64() * r / discount
	if !utils.IsFinite(emi) || emi <= 0 {
		return decimal.Zero, fmt.Errorf("%w: платеж не является конечным положительным числом", ErrInvalidLoanParameters)
	}

	return decimal.NewFromFloat(emi), nil
}

func checkLoan(principal, annualRatePercent decimal.Decimal, tenureYears int) error {
	if !principal.IsPositive() {
		return fmt.Errorf("%w: сумма кредита должна быть положительной", ErrInvalidLoanParameters)
	}
	if annualRatePercent.IsNegative() {
		return fmt.Errorf("%w: ставка не может быть отрицательной", ErrInvalidLoanParameters)
	}
	if tenureYears <= 0 {
		return fmt.Errorf("%w: срок должен быть не меньше одного года", ErrInvalidLoanParameters)
	}
	return nil
}
