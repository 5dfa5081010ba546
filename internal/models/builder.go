package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spendlens/internal/currencyutils"
	"fjacquet/spendlens/internal/dateutils"
)

// ExpenseBuilder assembles an Expense from loosely typed values, typically
// the cells of a stored row. The first error short-circuits the remaining calls.
type ExpenseBuilder struct {
	date     time.Time
	category string
	amount   decimal.Decimal
	notes    string
	err      error
}

// NewExpenseBuilder creates an empty builder.
func NewExpenseBuilder() *ExpenseBuilder {
	return &ExpenseBuilder{amount: decimal.Zero}
}

// WithDate sets the date.
func (b *ExpenseBuilder) WithDate(date time.Time) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.date = date
	return b
}

// WithDateString parses the date with dateutils.ParseDate.
func (b *ExpenseBuilder) WithDateString(value string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	date, err := dateutils.ParseDate(value)
	if err != nil {
		b.err = err
		return b
	}
	b.date = date
	return b
}

// WithCategory sets the category.
func (b *ExpenseBuilder) WithCategory(category string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.category = category
	return b
}

// WithAmount sets the amount.
func (b *ExpenseBuilder) WithAmount(amount decimal.Decimal) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.amount = amount
	return b
}

// WithAmountString sets the amount from a decimal string. A leading "$" and
// thousands separators are accepted.
func (b *ExpenseBuilder) WithAmountString(value string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		b.err = fmt.Errorf("invalid amount '%s': %w", value, err)
		return b
	}
	b.amount = amount
	return b
}

// WithNotes sets the free-text notes.
func (b *ExpenseBuilder) WithNotes(notes string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.notes = notes
	return b
}

// Err returns the first error recorded so far.
func (b *ExpenseBuilder) Err() error {
	return b.err
}

// Build validates the collected values and returns the Expense.
func (b *ExpenseBuilder) Build() (Expense, error) {
	if b.err != nil {
		return Expense{}, b.err
	}
	if b.date.IsZero() {
		return Expense{}, errors.New("date is required")
	}
	if b.amount.IsNegative() {
		return Expense{}, fmt.Errorf("amount cannot be negative: %s", b.amount.String())
	}
	return NewExpense(b.date, b.category, b.amount, b.notes), nil
}
