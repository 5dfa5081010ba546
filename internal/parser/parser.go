// Package parser extracts an amount and a date from a free-text expense
// description.
//
// Both extractors are heuristic and never fail: a missing amount is reported
// as zero and a missing date as today. The first number in the text wins, so
// "Bought 5 items for $50" yields 5.
package parser

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// Parser defines the extraction operations the controller depends on.
type Parser interface {
	// ParseAmount returns the first amount found in text, or zero.
	ParseAmount(text string) decimal.Decimal

	// ParseDate returns the calendar date text refers to, or today.
	ParseDate(text string) time.Time

	// ParseExpense runs both extractors and scores the result.
	ParseExpense(text string) models.ParsedExpense
}

// ExpenseParser is the default Parser.
type ExpenseParser struct {
	logger   logging.Logger
	clock    dateutils.Clock
	resolver DateResolver
}

// Option configures an ExpenseParser.
type Option func(*ExpenseParser)

// WithClock sets the source of the reference instant.
func WithClock(clock dateutils.Clock) Option {
	return func(p *ExpenseParser) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithResolver replaces the natural-language date resolver.
func WithResolver(resolver DateResolver) Option {
	return func(p *ExpenseParser) {
		if resolver != nil {
			p.resolver = resolver
		}
	}
}

// NewExpenseParser creates an ExpenseParser. A nil logger falls back to the default logger.
func NewExpenseParser(logger logging.Logger, opts ...Option) *ExpenseParser {
	p := &ExpenseParser{
		logger:   logging.OrDefault(logger),
		clock:    dateutils.SystemClock{},
		resolver: NewWhenResolver(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseAmount implements Parser.
func (p *ExpenseParser) ParseAmount(text string) decimal.Decimal {
	return extractAmount(p.logger, text)
}

// ParseDate implements Parser.
func (p *ExpenseParser) ParseDate(text string) time.Time {
	return extractDate(p.logger, p.resolver, text, p.clock.Now())
}

// ParseExpense implements Parser. Confidence starts at 1.0 and loses 0.5
// when no amount was found.
func (p *ExpenseParser) ParseExpense(text string) models.ParsedExpense {
	p.logger.Info("Parsing expense", logging.Field{Key: logging.FieldText, Value: text})

	amount := p.ParseAmount(text)
	date := p.ParseDate(text)

	confidence := 1.0
	if amount.IsZero() {
		confidence -= 0.5
	}

	return models.ParsedExpense{
		RawText:        text,
		DetectedAmount: amount,
		DetectedDate:   date,
		Confidence:     confidence,
	}
}

// ExtractAmount runs the amount extractor with the default logger.
func ExtractAmount(text string) decimal.Decimal {
	return extractAmount(logging.GetLogger(), text)
}

// ExtractDate runs the date extractor against the wall clock with the default logger.
func ExtractDate(text string) time.Time {
	return extractDate(logging.GetLogger(), NewWhenResolver(), text, time.Now())
}
