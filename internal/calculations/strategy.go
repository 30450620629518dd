package calculations

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScheduleWithStrategy выбирает расчет по стратегии.
//
// Prepayment без настроек считается как стандартный кредит.
// Неизвестная стратегия возвращает ErrUnsupportedStrategy.
func ScheduleWithStrategy(params LoanParameters, strategy StrategyType, cfg *StrategyConfig) (*CalculationResult, error) {
	if cfg == nil {
		cfg = &StrategyConfig{}
	}

	switch strategy {
	case StrategyStandard:
		return standardSchedule(params)

	case StrategyStepUp:
		increase := decimal.Zero
		if cfg.StepUp != nil {
			increase = cfg.StepUp.AnnualIncrease
		}
		return StepUpSchedule(params.Principal, params.AnnualRate, params.TenureYears, increase)

	case StrategyPrepayment:
		if cfg.Prepayment == nil {
			return standardSchedule(params)
		}
		return PrepaymentSchedule(params.Principal, params.AnnualRate, params.TenureYears,
			cfg.Prepayment.Amount, cfg.Prepayment.Year)

	case StrategySecured:
		rate := params.AnnualRate
		if cfg.Secured != nil && cfg.Secured.NewRate != nil {
			rate = *cfg.Secured.NewRate
		}
		emi, err := StandardEMI(params.Principal, rate, params.TenureYears)
		if err != nil {
			return nil, err
		}
		return RepaymentSchedule(params.Principal, rate, params.TenureYears, emi)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, string(strategy))
	}
}

// standardSchedule использует заданный платеж, если он есть, иначе аннуитетный
func standardSchedule(params LoanParameters) (*CalculationResult, error) {
	if params.EMI != nil {
		return RepaymentSchedule(params.Principal, params.AnnualRate, params.TenureYears, *params.EMI)
	}

	emi, err := StandardEMI(params.Principal, params.AnnualRate, params.TenureYears)
	if err != nil {
		return nil, err
	}
	return RepaymentSchedule(params.Principal, params.AnnualRate, params.TenureYears, emi)
}
