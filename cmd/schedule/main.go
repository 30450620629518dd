// Command schedule prints an EMI repayment schedule for a single loan.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cloud-ru/emi-schedule-go/internal/calculations"
	"github.com/cloud-ru/emi-schedule-go/internal/config"
	"github.com/cloud-ru/emi-schedule-go/internal/logging"
	"github.com/cloud-ru/emi-schedule-go/internal/report"
	"github.com/cloud-ru/emi-schedule-go/internal/tools"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	flags
	compare      bool
	monthly      bool
	outputFormat string
}

// run parses args, writes the report to stdout and returns the exit code.
// The logger is synced before run returns on every path.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.principal, "principal", "", "loan amount")
	fs.StringVar(&o.rate, "rate", "", "annual interest rate in percent")
	fs.IntVar(&o.tenure, "tenure", 0, "loan tenure in years")
	fs.StringVar(&o.emi, "emi", "", "override the monthly installment")
	fs.StringVar(&o.strategy, "strategy", "", "repayment strategy: stepup, prepayment, secured")
	fs.StringVar(&o.increase, "increase", "0", "stepup: yearly EMI increase")
	fs.StringVar(&o.prepayAmount, "prepay-amount", "0", "prepayment: lump sum")
	fs.IntVar(&o.prepayYear, "prepay-year", 0, "prepayment: year the lump sum is paid")
	fs.StringVar(&o.newRate, "new-rate", "", "secured: annual rate after refinancing")
	fs.BoolVar(&o.compare, "compare", false, "compare the strategy with the standard schedule")
	fs.BoolVar(&o.monthly, "monthly", false, "include the monthly table")
	fs.StringVar(&o.outputFormat, "output-format", report.FormatPretty, "output format: pretty, csv, json")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := execute(logger, o, stdout); err != nil {
		logger.Error("schedule failed", zap.String("op", "main"), zap.Error(err))
		return 1
	}
	return 0
}

func execute(logger *zap.Logger, o options, stdout io.Writer) error {
	if err := report.ValidateFormat(o.outputFormat); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	req, err := buildRequest(o.flags)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	tracer := noop.NewTracerProvider().Tracer("emi-schedule-cli")
	ctx := context.Background()

	if o.compare {
		cmp, err := tools.CompareHandler(cfg, tracer, logger)(ctx, req)
		if err != nil {
			return err
		}
		if o.outputFormat == report.FormatJSON {
			return report.JSON(stdout, cmp)
		}
		return report.Comparison(stdout, cmp)
	}

	result, err := tools.ScheduleHandler(cfg, tracer, logger)(ctx, req)
	if err != nil {
		return err
	}

	switch o.outputFormat {
	case report.FormatCSV:
		return report.CSV(stdout, result, o.monthly)
	case report.FormatJSON:
		return report.JSON(stdout, result)
	default:
		return report.Pretty(stdout, result, o.monthly)
	}
}

type flags struct {
	principal    string
	rate         string
	tenure       int
	emi          string
	strategy     string
	increase     string
	prepayAmount string
	prepayYear   int
	newRate      string
}

// buildRequest turns command line values into a calculation request.
// Strategy sections are only set for the selected strategy.
func buildRequest(f flags) (tools.Request, error) {
	var req tools.Request

	principal, err := decimal.NewFromString(f.principal)
	if err != nil {
		return req, fmt.Errorf("principal: %w", err)
	}
	rate, err := decimal.NewFromString(f.rate)
	if err != nil {
		return req, fmt.Errorf("rate: %w", err)
	}
	req.Loan = calculations.LoanParameters{
		Principal:   principal,
		AnnualRate:  rate,
		TenureYears: f.tenure,
	}
	if f.emi != "" {
		emi, err := decimal.NewFromString(f.emi)
		if err != nil {
			return req, fmt.Errorf("emi: %w", err)
		}
		req.Loan.EMI = &emi
	}

	req.StrategyType = calculations.StrategyType(f.strategy)
	cfg := &calculations.StrategyConfig{}
	switch req.StrategyType {
	case calculations.StrategyStepUp:
		increase, err := decimal.NewFromString(f.increase)
		if err != nil {
			return req, fmt.Errorf("increase: %w", err)
		}
		cfg.StepUp = &calculations.StepUpConfig{AnnualIncrease: increase}
	case calculations.StrategyPrepayment:
		amount, err := decimal.NewFromString(f.prepayAmount)
		if err != nil {
			return req, fmt.Errorf("prepay-amount: %w", err)
		}
		cfg.Prepayment = &calculations.PrepaymentConfig{Amount: amount, Year: f.prepayYear}
	case calculations.StrategySecured:
		if f.newRate != "" {
			newRate, err := decimal.NewFromString(f.newRate)
			if err != nil {
				return req, fmt.Errorf("new-rate: %w", err)
			}
			cfg.Secured = &calculations.SecuredConfig{NewRate: &newRate}
		}
	}
	req.StrategyConfig = cfg
	return req, nil
}
