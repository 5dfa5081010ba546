// Package aggregator computes category totals and date-range views over a
// record set. It is pure and never touches storage.
package aggregator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/models"
)

// Aggregator summarizes expenses.
type Aggregator struct{}

// New returns an Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// CategoryTotals groups records by exact category name and returns one total
// per category, largest first. Equal totals keep the order in which the
// category first appeared.
func (a *Aggregator) CategoryTotals(records []models.Expense) []models.CategoryTotal {
	index := make(map[string]int)
	totals := make([]models.CategoryTotal, 0)

	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, models.CategoryTotal{Category: r.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(r.Amount)
		totals[i].Count++
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

// TotalSpending sums all amounts; zero for no records.
func (a *Aggregator) TotalSpending(records []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// FilterByDateRange keeps the records whose calendar date lies within
// [start, end], both inclusive, in their original order.
func (a *Aggregator) FilterByDateRange(records []models.Expense, start, end time.Time) []models.Expense {
	filtered := make([]models.Expense, 0, len(records))
	for _, r := range records {
		if dateutils.InRange(r.Date, start, end) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
