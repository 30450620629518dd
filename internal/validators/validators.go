package validators

import (
	"fmt"

	"github.com/cloud-ru/emi-schedule-go/internal/calculations"
	"github.com/cloud-ru/emi-schedule-go/internal/config"
	"github.com/shopspring/decimal"
)

var minAmount = decimal.RequireFromString("0.01")

// ValidateDecimalRange проверяет, что значение в диапазоне [minInclusive; maxInclusive]
func ValidateDecimalRange(name string, value, minInclusive, maxInclusive decimal.Decimal) error {
	if value.LessThan(minInclusive) {
		return fmt.Errorf("%w: %s: значение должно быть ≥ %s", calculations.ErrInvalidLoanParameters, name, minInclusive.String())
	}
	if value.GreaterThan(maxInclusive) {
		return fmt.Errorf("%w: %s: значение слишком велико (>%s)", calculations.ErrInvalidLoanParameters, name, maxInclusive.String())
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%w: %s: значение должно быть в диапазоне [%d; %d]", calculations.ErrInvalidLoanParameters, name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal decimal.Decimal) error {
	return ValidateDecimalRange("principal", principal, minAmount, decimal.NewFromFloat(cfg.MaxPrincipal))
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, rate decimal.Decimal) error {
	return ValidateDecimalRange("annualRate", rate, decimal.Zero, decimal.NewFromFloat(cfg.MaxRate))
}

// CheckTenure проверяет срок в годах
func CheckTenure(cfg *config.Config, tenureYears int) error {
	return ValidateIntRange("tenureYears", tenureYears, 1, cfg.MaxTenureYears)
}

// CheckEMI проверяет заданный ежемесячный платеж, если он есть
func CheckEMI(cfg *config.Config, emi *decimal.Decimal) error {
	if emi == nil {
		return nil
	}
	return ValidateDecimalRange("emi", *emi, minAmount, decimal.NewFromFloat(cfg.MaxPrincipal))
}

// CheckLoan выполняет все проверки кредита
func CheckLoan(cfg *config.Config, params calculations.LoanParameters) error {
	if err := CheckPrincipal(cfg, params.Principal); err != nil {
		return err
	}
	if err := CheckRate(cfg, params.AnnualRate); err != nil {
		return err
	}
	if err := CheckTenure(cfg, params.TenureYears); err != nil {
		return err
	}
	return CheckEMI(cfg, params.EMI)
}

// CheckStrategy проверяет настройки выбранной стратегии.
// Настройки других стратегий игнорируются.
func CheckStrategy(cfg *config.Config, tenureYears int, strategy calculations.StrategyType, strategyConfig *calculations.StrategyConfig) error {
	if strategyConfig == nil {
		return nil
	}
	maxAmount := decimal.NewFromFloat(cfg.MaxPrincipal)

	switch strategy {
	case calculations.StrategyStepUp:
		if strategyConfig.StepUp != nil {
			return ValidateDecimalRange("stepup.annualIncrease", strategyConfig.StepUp.AnnualIncrease, decimal.Zero, maxAmount)
		}
	case calculations.StrategyPrepayment:
		if p := strategyConfig.Prepayment; p != nil {
			if err := ValidateDecimalRange("prepayment.amount", p.Amount, minAmount, maxAmount); err != nil {
				return err
			}
			return ValidateIntRange("prepayment.year", p.Year, 1, tenureYears)
		}
	case calculations.StrategySecured:
		if s := strategyConfig.Secured; s != nil && s.NewRate != nil {
			return ValidateDecimalRange("secured.newRate", *s.NewRate, decimal.Zero, decimal.NewFromFloat(cfg.MaxRate))
		}
	}
	return nil
}
