// Package models holds the expense record and the values derived from it.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spendlens/internal/dateutils"
)

// Expense is one logged purchase. Date carries a calendar date only.
type Expense struct {
	Date     time.Time       `json:"date" yaml:"date"`
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Notes    string          `json:"notes" yaml:"notes"`
}

// NewExpense builds an Expense with the date truncated to a calendar day,
// the amount rounded to cents and an empty category replaced by DefaultCategory.
func NewExpense(date time.Time, category string, amount decimal.Decimal, notes string) Expense {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Expense{
		Date:     dateutils.StartOfDay(date),
		Category: category,
		Amount:   amount.Round(2),
		Notes:    notes,
	}
}

// IsTotal reports whether the record is a report summary row.
func (e Expense) IsTotal() bool {
	return IsReservedCategory(e.Category)
}

// IsReservedCategory reports whether name is the summary-row label, in any case.
func IsReservedCategory(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), TotalCategory)
}

// FormattedDate returns the record date as an ISO date.
func (e Expense) FormattedDate() string {
	return dateutils.ToISODate(e.Date)
}

func (e Expense) String() string {
	return fmt.Sprintf("$%s - %s on %s", e.Amount.StringFixed(2), e.Category, e.FormattedDate())
}

// CategoryTotal is the aggregate of all records sharing one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

func (c CategoryTotal) String() string {
	return fmt.Sprintf("%s: $%s (%d transactions)", c.Category, c.Total.StringFixed(2), c.Count)
}

// ParsedExpense is the result of running the extractors over free text.
// A zero DetectedAmount means no amount was found.
type ParsedExpense struct {
	RawText        string
	DetectedAmount decimal.Decimal
	DetectedDate   time.Time
	Confidence     float64
}

// AmountFound reports whether the parser detected a non-zero amount.
func (p ParsedExpense) AmountFound() bool {
	return !p.DetectedAmount.IsZero()
}
