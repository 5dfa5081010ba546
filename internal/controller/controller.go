// Package controller coordinates parsing, storage, aggregation, export and
// the language-model services behind the commands a user runs.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spendlens/internal/aggregator"
	"fjacquet/spendlens/internal/ai"
	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/expenseerror"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/parser"
	"fjacquet/spendlens/internal/store"
)

// Messages returned by Ask instead of an answer.
const (
	MsgEmptyQuestion = "Please enter a question."
	MsgNoData        = "No data available yet. Log some expenses first."
	MsgNotConfigured = "AI assistant is not configured."
	msgAskFailed     = "Sorry, I couldn't analyze your expenses: %v"
)

var (
	// ErrTranscriptionUnavailable is returned by Transcribe without a transcriber.
	ErrTranscriptionUnavailable = errors.New("transcription service is not configured")

	// ErrReservedCategory is returned by AddExpense for the summary-row label.
	ErrReservedCategory = errors.New("category is reserved for report totals")
)

// ReportFormatter styles an exported workbook in place.
type ReportFormatter interface {
	FormatWorkbook(path string) error
}

// ReportWriterFactory returns the backend an export is written through.
type ReportWriterFactory func(path string) store.Backend

// Dashboard is the summary shown to the user.
type Dashboard struct {
	Records        []models.Expense
	CategoryTotals []models.CategoryTotal
	TotalSpending  decimal.Decimal
	Count          int
}

// Dependencies groups the collaborators of an ExpenseController.
// Query and Transcriber are optional.
type Dependencies struct {
	Store        store.Store
	Parser       parser.Parser
	Aggregator   *aggregator.Aggregator
	Formatter    ReportFormatter
	Query        ai.QueryService
	Transcriber  ai.Transcriber
	Clock        dateutils.Clock
	ReportWriter ReportWriterFactory
	Logger       logging.Logger
}

// ExpenseController is the application facade.
type ExpenseController struct {
	store        store.Store
	parser       parser.Parser
	aggregator   *aggregator.Aggregator
	formatter    ReportFormatter
	query        ai.QueryService
	transcriber  ai.Transcriber
	clock        dateutils.Clock
	reportWriter ReportWriterFactory
	logger       logging.Logger
}

// NewExpenseController wires a controller. Store, Parser and Formatter are required.
func NewExpenseController(deps Dependencies) (*ExpenseController, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if deps.Parser == nil {
		return nil, fmt.Errorf("parser cannot be nil")
	}
	if deps.Formatter == nil {
		return nil, fmt.Errorf("formatter cannot be nil")
	}
	if deps.Aggregator == nil {
		deps.Aggregator = aggregator.New()
	}
	if deps.ReportWriter == nil {
		deps.ReportWriter = func(path string) store.Backend { return store.NewXLSXBackend(path) }
	}

	c := &ExpenseController{
		store:        deps.Store,
		parser:       deps.Parser,
		aggregator:   deps.Aggregator,
		formatter:    deps.Formatter,
		query:        deps.Query,
		transcriber:  deps.Transcriber,
		clock:        dateutils.ClockOrSystem(deps.Clock),
		reportWriter: deps.ReportWriter,
		logger:       logging.OrDefault(deps.Logger),
	}
	c.logger.Info("ExpenseController initialized",
		logging.Field{Key: "ai_enabled", Value: c.query != nil},
		logging.Field{Key: "transcription_enabled", Value: c.transcriber != nil})
	return c, nil
}

// ParseAndCreateExpense parses text and builds an expense. A non-nil
// manualAmount or manualDate replaces the detected value; the text becomes the notes.
func (c *ExpenseController) ParseAndCreateExpense(text, category string, manualAmount *decimal.Decimal, manualDate *time.Time) models.Expense {
	parsed := c.parser.ParseExpense(text)

	date := parsed.DetectedDate
	if manualDate != nil && !manualDate.IsZero() {
		date = *manualDate
	}
	amount := parsed.DetectedAmount
	if manualAmount != nil {
		amount = *manualAmount
	}

	e := models.NewExpense(date, category, amount, text)
	c.logger.Info("Created expense",
		logging.Field{Key: logging.FieldCategory, Value: e.Category},
		logging.Field{Key: logging.FieldAmount, Value: e.Amount.StringFixed(2)},
		logging.Field{Key: logging.FieldDate, Value: e.FormattedDate()},
		logging.Field{Key: logging.FieldConfidence, Value: parsed.Confidence})
	return e
}

// AddExpense creates an expense from text and appends it to the store.
// The TOTAL category is refused since Load never returns such records.
func (c *ExpenseController) AddExpense(ctx context.Context, text, category string, manualAmount *decimal.Decimal, manualDate *time.Time) (models.Expense, error) {
	if models.IsReservedCategory(category) {
		return models.Expense{}, fmt.Errorf("%w: %s", ErrReservedCategory, strings.TrimSpace(category))
	}
	created := c.ParseAndCreateExpense(text, category, manualAmount, manualDate)
	e, err := models.NewExpenseBuilder().
		WithDate(created.Date).
		WithCategory(created.Category).
		WithAmount(created.Amount).
		WithNotes(created.Notes).
		Build()
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid expense: %w", err)
	}
	if err := c.store.Append(ctx, e); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// AllExpenses returns every stored record.
func (c *ExpenseController) AllExpenses(ctx context.Context) []models.Expense {
	return c.store.Load(ctx)
}

// ExpensesBetween returns the stored records dated within [start, end].
func (c *ExpenseController) ExpensesBetween(ctx context.Context, start, end time.Time) []models.Expense {
	return c.aggregator.FilterByDateRange(c.store.Load(ctx), start, end)
}

// Dashboard loads the records once and summarizes them.
func (c *ExpenseController) Dashboard(ctx context.Context) Dashboard {
	records := c.store.Load(ctx)
	return Dashboard{
		Records:        records,
		CategoryTotals: c.aggregator.CategoryTotals(records),
		TotalSpending:  c.aggregator.TotalSpending(records),
		Count:          len(records),
	}
}

// ExportReport writes every record plus a TOTAL row dated today to a
// workbook at path and styles it.
func (c *ExpenseController) ExportReport(ctx context.Context, path string) error {
	records := c.store.Load(ctx)
	total := c.aggregator.TotalSpending(records)
	rows := append(records, models.NewExpense(c.clock.Now(), models.TotalCategory, total, ""))

	writer := c.reportWriter(path)
	if err := writer.Write(ctx, rows); err != nil {
		return &expenseerror.StorageError{Backend: writer.Name(), Op: "export", Path: path, Err: err}
	}
	if err := c.formatter.FormatWorkbook(path); err != nil {
		return fmt.Errorf("failed to format report %s: %w", path, err)
	}

	c.logger.Info("Exported expenses",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldTotal, Value: total.StringFixed(2)})
	return nil
}

// ClearAll removes every stored record.
func (c *ExpenseController) ClearAll(ctx context.Context) error {
	if err := c.store.ClearAll(ctx); err != nil {
		return err
	}
	c.logger.Info("All expenses cleared")
	return nil
}

// Ask answers a question about the stored records. Every failure is turned
// into a message for the user rather than an error.
func (c *ExpenseController) Ask(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return MsgEmptyQuestion
	}

	records := c.store.Load(ctx)
	if len(records) == 0 {
		return MsgNoData
	}
	if c.query == nil {
		return MsgNotConfigured
	}

	c.logger.Info("Analyzing expenses", logging.Field{Key: logging.FieldQuery, Value: question})
	answer, err := c.query.Analyze(ctx, ai.BuildPrompt(records, question))
	if err != nil {
		c.logger.WithError(err).Error("Expense analysis failed")
		return fmt.Sprintf(msgAskFailed, err)
	}
	return answer
}

// Transcribe converts an audio recording to text.
func (c *ExpenseController) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if c.transcriber == nil {
		return "", &expenseerror.ServiceError{Service: "transcription", Op: "transcribe", Err: ErrTranscriptionUnavailable}
	}
	text, err := c.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		var svcErr *expenseerror.ServiceError
		if errors.As(err, &svcErr) {
			return "", err
		}
		return "", &expenseerror.ServiceError{Service: "transcription", Op: "transcribe", Err: err}
	}
	return text, nil
}
