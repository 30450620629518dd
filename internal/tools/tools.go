package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloud-ru/emi-schedule-go/internal/calculations"
	"github.com/cloud-ru/emi-schedule-go/internal/config"
	"github.com/cloud-ru/emi-schedule-go/internal/metrics"
	"github.com/cloud-ru/emi-schedule-go/internal/validators"
	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	toolSchedule = "repayment_schedule"
	toolCompare  = "compare_strategy"
	toolEMI      = "standard_emi"
)

// Request содержит кредит и стратегию расчета
type Request struct {
	Loan           calculations.LoanParameters
	StrategyType   calculations.StrategyType
	StrategyConfig *calculations.StrategyConfig
}

// ScheduleFunc рассчитывает график платежей
type ScheduleFunc func(ctx context.Context, req Request) (*calculations.CalculationResult, error)

// CompareFunc сравнивает стратегию со стандартным графиком
type CompareFunc func(ctx context.Context, req Request) (*calculations.StrategyComparison, error)

// EMIFunc рассчитывает стандартный платеж с округлением до копеек
type EMIFunc func(ctx context.Context, loan calculations.LoanParameters) (decimal.Decimal, error)

// ScheduleHandler обрабатывает запрос на расчет графика
func ScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ScheduleFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req Request) (*calculations.CalculationResult, error) {
		ctx, span := tracer.Start(ctx, toolSchedule)
		defer span.End()

		strategy := strategyLabel(req.StrategyType)
		setLoanAttributes(span, req)
		metrics.APICalls.WithLabelValues("http", toolSchedule, "started").Inc()

		if err := validate(cfg, req); err != nil {
			metrics.ScheduleCalculations.WithLabelValues(strategy, "validation_error").Inc()
			return nil, fail(span, toolSchedule, err)
		}

		result, err := calculations.ScheduleWithStrategy(req.Loan, req.StrategyType, req.StrategyConfig)
		if err != nil {
			metrics.ScheduleCalculations.WithLabelValues(strategy, "error").Inc()
			logger.Warn("schedule calculation failed",
				zap.String("op", "tools.ScheduleHandler"),
				zap.String("strategy", strategy),
				zap.Error(err),
			)
			return nil, fail(span, toolSchedule, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_emi", utils.Float(result.LoanDetails.MonthlyEMI)),
			attribute.Float64("total_interest", utils.Float(result.LoanDetails.TotalInterest)),
			attribute.Int("tenure_months", result.LoanDetails.TenureMonths),
		)
		metrics.ScheduleCalculations.WithLabelValues(strategy, "success").Inc()
		metrics.ScheduleMonths.WithLabelValues(strategy).Observe(float64(result.LoanDetails.TenureMonths))
		metrics.ToolCalls.WithLabelValues(toolSchedule, "success").Inc()
		metrics.APICalls.WithLabelValues("http", toolSchedule, "success").Inc()

		logger.Debug("schedule calculated",
			zap.String("op", "tools.ScheduleHandler"),
			zap.String("strategy", strategy),
			zap.Int("months", result.LoanDetails.TenureMonths),
			zap.String("monthly_emi", result.LoanDetails.MonthlyEMI.StringFixed(2)),
		)
		return result, nil
	}
}

// CompareHandler обрабатывает запрос на сравнение стратегии
func CompareHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) CompareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req Request) (*calculations.StrategyComparison, error) {
		ctx, span := tracer.Start(ctx, toolCompare)
		defer span.End()

		setLoanAttributes(span, req)
		metrics.APICalls.WithLabelValues("http", toolCompare, "started").Inc()

		if err := validate(cfg, req); err != nil {
			return nil, fail(span, toolCompare, err)
		}

		result, err := calculations.CompareStrategy(req.Loan, req.StrategyType, req.StrategyConfig)
		if err != nil {
			logger.Warn("strategy comparison failed",
				zap.String("op", "tools.CompareHandler"),
				zap.Error(err),
			)
			return nil, fail(span, toolCompare, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("interest_saved", utils.Float(result.InterestSaved)),
			attribute.Int("months_saved", result.MonthsSaved),
		)
		metrics.ToolCalls.WithLabelValues(toolCompare, "success").Inc()
		metrics.APICalls.WithLabelValues("http", toolCompare, "success").Inc()
		return result, nil
	}
}

// EMIHandler обрабатывает запрос на расчет платежа
func EMIHandler(cfg *config.Config, tracer trace.Tracer) EMIFunc {
	return func(ctx context.Context, loan calculations.LoanParameters) (decimal.Decimal, error) {
		ctx, span := tracer.Start(ctx, toolEMI)
		defer span.End()

		setLoanAttributes(span, Request{Loan: loan})
		metrics.APICalls.WithLabelValues("http", toolEMI, "started").Inc()

		if err := validators.CheckLoan(cfg, loan); err != nil {
			return decimal.Zero, fail(span, toolEMI, err)
		}

		emi, err := calculations.StandardEMI(loan.Principal, loan.AnnualRate, loan.TenureYears)
		if err != nil {
			return decimal.Zero, fail(span, toolEMI, err)
		}

		emi = utils.Round2(emi)
		span.SetAttributes(attribute.Float64("emi", utils.Float(emi)))
		metrics.ToolCalls.WithLabelValues(toolEMI, "success").Inc()
		metrics.APICalls.WithLabelValues("http", toolEMI, "success").Inc()
		return emi, nil
	}
}

func validate(cfg *config.Config, req Request) error {
	if err := validators.CheckLoan(cfg, req.Loan); err != nil {
		return err
	}
	return validators.CheckStrategy(cfg, req.Loan.TenureYears, req.StrategyType, req.StrategyConfig)
}

func setLoanAttributes(span trace.Span, req Request) {
	span.SetAttributes(
		attribute.Float64("principal", utils.Float(req.Loan.Principal)),
		attribute.Float64("annual_rate", utils.Float(req.Loan.AnnualRate)),
		attribute.Int("tenure_years", req.Loan.TenureYears),
		attribute.String("strategy", strategyLabel(req.StrategyType)),
	)
}

// fail записывает ошибку в span и метрики
func fail(span trace.Span, toolName string, err error) error {
	errorType := "calculation"
	status := "error"
	switch {
	case errors.Is(err, calculations.ErrInvalidLoanParameters):
		errorType = "validation"
		status = "validation_error"
	case errors.Is(err, calculations.ErrUnsupportedStrategy):
		errorType = "unsupported_strategy"
		status = "validation_error"
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, errorType)
	span.SetAttributes(attribute.String("error", errorType))
	metrics.ToolCalls.WithLabelValues(toolName, status).Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
	metrics.APICalls.WithLabelValues("http", toolName, "error").Inc()

	return fmt.Errorf("%s: %w", toolName, err)
}

// strategyLabel ограничивает значения метки strategy известными стратегиями
func strategyLabel(strategy calculations.StrategyType) string {
	switch strategy {
	case calculations.StrategyStandard:
		return "standard"
	case calculations.StrategyStepUp, calculations.StrategyPrepayment, calculations.StrategySecured:
		return string(strategy)
	default:
		return "unknown"
	}
}
