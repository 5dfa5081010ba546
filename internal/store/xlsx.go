package store

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/models"
)

// DefaultWorksheet names the sheet written by XLSXBackend.
const DefaultWorksheet = "Expenses"

// XLSXBackend keeps the record set on the first worksheet of a workbook.
// Amounts are stored as numeric cells so spreadsheet formats apply to them.
type XLSXBackend struct {
	path string
}

// NewXLSXBackend returns a backend for the workbook at path.
func NewXLSXBackend(path string) *XLSXBackend {
	return &XLSXBackend{path: path}
}

// Name implements Backend.
func (b *XLSXBackend) Name() string { return BackendXLSX }

// Location implements Backend.
func (b *XLSXBackend) Location() string { return b.path }

// Read implements Backend.
func (b *XLSXBackend) Read(_ context.Context) ([]models.Expense, error) {
	if err := fileutils.RequireFile(b.path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook %s: %w", b.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []models.Expense{}, nil
	}

	table, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading worksheet %s: %w", sheets[0], err)
	}

	return decodeRows(BackendXLSX, rowsFromTable(table))
}

// Write implements Backend.
func (b *XLSXBackend) Write(_ context.Context, records []models.Expense) error {
	if err := fileutils.EnsureParentDir(b.path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), DefaultWorksheet); err != nil {
		return fmt.Errorf("error naming worksheet: %w", err)
	}

	header := make([]interface{}, 0, 4)
	for _, h := range models.Headers() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(DefaultWorksheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := encodeRow(r)
		values := []interface{}{row.Date, row.Category, r.Amount.Round(2).InexactFloat64(), row.Notes}
		if err := f.SetSheetRow(DefaultWorksheet, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(b.path); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", b.path, err)
	}
	return nil
}
