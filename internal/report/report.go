// Package report renders schedules for terminals and spreadsheets.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cloud-ru/emi-schedule-go/internal/calculations"
	"github.com/cloud-ru/emi-schedule-go/pkg/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Output formats
const (
	FormatPretty = "pretty"
	FormatCSV    = "csv"
	FormatJSON   = "json"
)

// ValidateFormat rejects unknown output formats
func ValidateFormat(format string) error {
	switch format {
	case FormatPretty, FormatCSV, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be one of %s, %s, %s", format, FormatPretty, FormatCSV, FormatJSON)
	}
}

// Pretty writes a human-readable summary followed by the yearly table,
// and the monthly table when monthly is set.
func Pretty(w io.Writer, result *calculations.CalculationResult, monthly bool) error {
	p := message.NewPrinter(language.English)
	d := result.LoanDetails

	lines := []struct {
		label string
		value string
	}{
		{"Principal", p.Sprintf("%.2f", utils.Float(d.Principal))},
		{"Annual rate", d.AnnualRate.String() + "%"},
		{"Tenure", p.Sprintf("%d months (%s years)", d.TenureMonths, d.TenureYears.StringFixed(2))},
		{"Monthly EMI", p.Sprintf("%.2f", utils.Float(d.MonthlyEMI))},
		{"Total interest", p.Sprintf("%.2f", utils.Float(d.TotalInterest))},
		{"Total prepayment", p.Sprintf("%.2f", utils.Float(d.TotalPrepayment))},
		{"Total amount", p.Sprintf("%.2f", utils.Float(d.TotalAmount))},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-17s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nYear | EMI paid        | Principal       | Interest        | Prepayment      | Balance\n"); err != nil {
		return err
	}
	for _, y := range result.YearlyBreakdown {
		if _, err := p.Fprintf(w, "%4d | %15.2f | %15.2f | %15.2f | %15.2f | %15.2f\n",
			y.Year,
			utils.Float(y.TotalEMI),
			utils.Float(y.TotalPrincipal),
			utils.Float(y.TotalInterest),
			utils.Float(y.TotalPrepayment),
			utils.Float(y.RemainingBalance),
		); err != nil {
			return err
		}
	}

	if !monthly {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nMonth | EMI             | Principal       | Interest        | Prepayment      | Balance\n"); err != nil {
		return err
	}
	for _, m := range result.MonthlySchedule {
		if _, err := p.Fprintf(w, "%5d | %15.2f | %15.2f | %15.2f | %15.2f | %15.2f\n",
			m.Month,
			utils.Float(m.EMI),
			utils.Float(m.PrincipalPayment),
			utils.Float(m.InterestPayment),
			utils.Float(m.Prepayment),
			utils.Float(m.RemainingBalance),
		); err != nil {
			return err
		}
	}
	return nil
}

// CSV writes the monthly schedule, or the yearly breakdown when monthly is false.
// Amounts keep exactly two decimals.
func CSV(w io.Writer, result *calculations.CalculationResult, monthly bool) error {
	cw := csv.NewWriter(w)

	if monthly {
		if err := cw.Write([]string{"month", "emi", "principal", "interest", "prepayment", "balance", "cumulative_principal", "cumulative_interest"}); err != nil {
			return err
		}
		for _, m := range result.MonthlySchedule {
			record := []string{
				strconv.Itoa(m.Month),
				m.EMI.StringFixed(2),
				m.PrincipalPayment.StringFixed(2),
				m.InterestPayment.StringFixed(2),
				m.Prepayment.StringFixed(2),
				m.RemainingBalance.StringFixed(2),
				m.CumulativePrincipal.StringFixed(2),
				m.CumulativeInterest.StringFixed(2),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	} else {
		if err := cw.Write([]string{"year", "emi", "principal", "interest", "prepayment", "balance"}); err != nil {
			return err
		}
		for _, y := range result.YearlyBreakdown {
			record := []string{
				strconv.Itoa(y.Year),
				y.TotalEMI.StringFixed(2),
				y.TotalPrincipal.StringFixed(2),
				y.TotalInterest.StringFixed(2),
				y.TotalPrepayment.StringFixed(2),
				y.RemainingBalance.StringFixed(2),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSON writes v as indented JSON
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Comparison writes a short side-by-side summary of two schedules
func Comparison(w io.Writer, cmp *calculations.StrategyComparison) error {
	p := message.NewPrinter(language.English)
	std := cmp.Standard.LoanDetails
	alt := cmp.Strategy.LoanDetails

	if _, err := fmt.Fprintf(w, "%-16s | %15s | %15s\n", "", "standard", string(cmp.StrategyType)); err != nil {
		return err
	}
	rows := []struct {
		label    string
		standard float64
		strategy float64
	}{
		{"Monthly EMI", utils.Float(std.MonthlyEMI), utils.Float(alt.MonthlyEMI)},
		{"Total interest", utils.Float(std.TotalInterest), utils.Float(alt.TotalInterest)},
		{"Total amount", utils.Float(std.TotalAmount), utils.Float(alt.TotalAmount)},
	}
	for _, r := range rows {
		if _, err := p.Fprintf(w, "%-16s | %15.2f | %15.2f\n", r.label, r.standard, r.strategy); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "%-16s | %15d | %15d\n", "Months", std.TenureMonths, alt.TenureMonths); err != nil {
		return err
	}

	_, err := p.Fprintf(w, "\nInterest saved: %.2f\nMonths saved: %d\n%s\n", utils.Float(cmp.InterestSaved), cmp.MonthsSaved, cmp.Recommendation)
	return err
}
