// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/spendlens/internal/controller"
	"fjacquet/spendlens/internal/currencyutils"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/models"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	total   = color.New(color.Bold)
)

// Context returns the command context, or a background context when the
// command runs outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// JoinArgs turns positional arguments into one sentence.
func JoinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// ParseAmountFlag returns nil for an empty value.
func ParseAmountFlag(value string) (*decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative: %s", value)
	}
	return &amount, nil
}

// ParseDateFlag returns nil for an empty value.
func ParseDateFlag(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	date, err := dateutils.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid date '%s' (expected YYYY-MM-DD): %w", value, err)
	}
	return &date, nil
}

// Success prints a confirmation line.
func Success(w io.Writer, format string, args ...interface{}) {
	_, _ = success.Fprintf(w, format+"\n", args...)
}

// Warn prints a warning line.
func Warn(w io.Writer, format string, args ...interface{}) {
	_, _ = warning.Fprintf(w, format+"\n", args...)
}

// PrintParsed shows what the extractors detected in a sentence.
func PrintParsed(w io.Writer, parsed models.ParsedExpense) {
	_, _ = heading.Fprintln(w, "Detected")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	amount := currencyutils.FormatMoney(parsed.DetectedAmount)
	if !parsed.AmountFound() {
		amount += " (not found)"
	}
	fmt.Fprintf(tw, "Amount:\t%s\n", amount)
	fmt.Fprintf(tw, "Date:\t%s\n", dateutils.ToISODate(parsed.DetectedDate))
	fmt.Fprintf(tw, "Confidence:\t%.0f%%\n", parsed.Confidence*100)
	_ = tw.Flush()
}

// PrintExpenses renders records as a table with a total line.
func PrintExpenses(w io.Writer, records []models.Expense) {
	if len(records) == 0 {
		Warn(w, "No expenses recorded.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = heading.Fprintf(tw, "%s\t%s\t%s\t%s\n", models.HeaderDate, models.HeaderCategory, models.HeaderAmount, models.HeaderNotes)
	sum := decimal.Zero
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.FormattedDate(), r.Category, currencyutils.FormatMoney(r.Amount), r.Notes)
		sum = sum.Add(r.Amount)
	}
	_ = tw.Flush()
	_, _ = total.Fprintf(w, "%s, %s total\n", countExpenses(len(records)), currencyutils.FormatMoney(sum))
}

// PrintDashboard renders the spending summary with each category's share.
func PrintDashboard(w io.Writer, d controller.Dashboard) {
	_, _ = heading.Fprintln(w, "Spending dashboard")
	_, _ = total.Fprintf(w, "Total spending: %s across %s\n", currencyutils.FormatMoney(d.TotalSpending), countExpenses(d.Count))
	if d.Count == 0 {
		Warn(w, controller.MsgNoData)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Category\tTotal\tCount\tShare\t\n")
	for _, ct := range d.CategoryTotals {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s%%\t\n", ct.Category, currencyutils.FormatMoney(ct.Total), ct.Count,
			currencyutils.Percent(ct.Total, d.TotalSpending).StringFixed(1))
	}
	_ = tw.Flush()
}

func countExpenses(n int) string {
	if n == 1 {
		return "1 expense"
	}
	return fmt.Sprintf("%d expenses", n)
}
