package store

import (
	"fmt"
	"strings"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/expenseerror"
	"fjacquet/spendlens/internal/models"
)

// expenseRow is the string form of an expense shared by every backend.
type expenseRow struct {
	Date     string `csv:"Date/Time"`
	Category string `csv:"Category"`
	Amount   string `csv:"Amount ($)"`
	Notes    string `csv:"Notes"`
}

func encodeRow(e models.Expense) expenseRow {
	return expenseRow{
		Date:     dateutils.ToISODate(e.Date),
		Category: e.Category,
		Amount:   e.Amount.StringFixed(2),
		Notes:    e.Notes,
	}
}

func encodeRows(records []models.Expense) []expenseRow {
	rows := make([]expenseRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, encodeRow(r))
	}
	return rows
}

func (r expenseRow) values() []string {
	return []string{r.Date, r.Category, r.Amount, r.Notes}
}

func (r expenseRow) blank() bool {
	return strings.TrimSpace(r.Date+r.Category+r.Amount+r.Notes) == ""
}

// decode converts a stored row. TOTAL categories reach the caller unchanged.
func (r expenseRow) decode(source string) (models.Expense, error) {
	b := models.NewExpenseBuilder().WithDateString(r.Date)
	if err := b.Err(); err != nil {
		return models.Expense{}, &expenseerror.ParseError{Source: source, Field: "date", Value: r.Date, Err: err}
	}

	e, err := b.
		WithCategory(r.Category).
		WithAmountString(r.Amount).
		WithNotes(r.Notes).
		Build()
	if err != nil {
		return models.Expense{}, &expenseerror.ParseError{Source: source, Field: "amount", Value: r.Amount, Err: err}
	}
	return e, nil
}

// decodeRows skips blank rows and rows without a category before decoding,
// so a half-filled row never fails a load.
func decodeRows(source string, rows []expenseRow) ([]models.Expense, error) {
	records := make([]models.Expense, 0, len(rows))
	for i, row := range rows {
		if row.blank() || strings.TrimSpace(row.Category) == "" {
			continue
		}
		e, err := row.decode(source)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, e)
	}
	return records, nil
}

// rowsFromTable maps a header-first table of cells onto rows. Columns are
// located by header name; without a recognizable header the first four
// columns are taken positionally and the first line is kept as data.
func rowsFromTable(table [][]string) []expenseRow {
	if len(table) == 0 {
		return nil
	}

	index := map[string]int{}
	for i, h := range table[0] {
		index[strings.TrimSpace(h)] = i
	}

	cols := [4]int{0, 1, 2, 3}
	data := table
	if _, ok := index[models.HeaderCategory]; ok {
		for i, h := range models.Headers() {
			if c, ok := index[h]; ok {
				cols[i] = c
			} else {
				cols[i] = -1
			}
		}
		data = table[1:]
	}

	cell := func(line []string, c int) string {
		if c < 0 || c >= len(line) {
			return ""
		}
		return line[c]
	}

	rows := make([]expenseRow, 0, len(data))
	for _, line := range data {
		rows = append(rows, expenseRow{
			Date:     cell(line, cols[0]),
			Category: cell(line, cols[1]),
			Amount:   cell(line, cols[2]),
			Notes:    cell(line, cols[3]),
		})
	}
	return rows
}
