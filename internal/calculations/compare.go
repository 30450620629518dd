package calculations

import (
	"fmt"

	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
)

// CompareStrategy сравнивает стандартный аннуитетный график с графиком стратегии
func CompareStrategy(params LoanParameters, strategy StrategyType, cfg *StrategyConfig) (*StrategyComparison, error) {
	standard := params
	standard.EMI = nil
	standardResult, err := ScheduleWithStrategy(standard, StrategyStandard, nil)
	if err != nil {
		return nil, err
	}

	strategyResult, err := ScheduleWithStrategy(params, strategy, cfg)
	if err != nil {
		return nil, err
	}

	interestSaved := utils.Round2(standardResult.LoanDetails.TotalInterest.Sub(strategyResult.LoanDetails.TotalInterest))
	monthsSaved := standardResult.LoanDetails.TenureMonths - strategyResult.LoanDetails.TenureMonths

	var recommendation string
	switch {
	case interestSaved.IsPositive() && monthsSaved > 0:
		recommendation = fmt.Sprintf("The %s plan saves %s in interest and closes the loan %d months earlier.",
			strategyLabel(strategy), interestSaved.StringFixed(2), monthsSaved)
	case interestSaved.IsPositive():
		recommendation = fmt.Sprintf("The %s plan saves %s in interest over the same tenure.",
			strategyLabel(strategy), interestSaved.StringFixed(2))
	case interestSaved.IsNegative():
		recommendation = fmt.Sprintf("The %s plan costs %s more in interest than the standard plan.",
			strategyLabel(strategy), interestSaved.Neg().StringFixed(2))
	default:
		recommendation = "Both plans cost the same in interest."
	}

	return &StrategyComparison{
		StrategyType:   strategy,
		Standard:       *standardResult,
		Strategy:       *strategyResult,
		InterestSaved:  interestSaved,
		MonthsSaved:    monthsSaved,
		Recommendation: recommendation,
	}, nil
}

func strategyLabel(strategy StrategyType) string {
	switch strategy {
	case StrategyStepUp:
		return "step-up"
	case StrategyPrepayment:
		return "prepayment"
	case StrategySecured:
		return "secured"
	default:
		return "standard"
	}
}
