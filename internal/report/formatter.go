// Package report styles an exported expense workbook and adds a spending chart.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// Layout and styling constants of the exported report.
const (
	SheetName     = "Expense Summary"
	ChartTitle    = "Spending by Category"
	HeaderFill    = "1F4E78"
	HeaderFont    = "FFFFFF"
	StripeFill    = "F2F2F2"
	BorderColor   = "CCCCCC"
	CurrencyFmt   = `"$"#,##0.00`
	widthPadding  = 4
	chartGapRows  = 3
	amountColumn  = 3
	categoryCol   = "B"
	amountColName = "C"
)

// Formatter applies the report styling to a workbook on disk.
type Formatter struct {
	logger logging.Logger
}

// NewFormatter creates a Formatter. A nil logger falls back to the default logger.
func NewFormatter(logger logging.Logger) *Formatter {
	return &Formatter{logger: logging.OrDefault(logger)}
}

type styleSet struct {
	header, plain, stripe, amount, amountStripe int
}

// FormatWorkbook opens the workbook at path, renames its active sheet, styles
// the header and data rows, sizes the columns and adds a column chart of
// amount by category when there is more than one data row. A trailing TOTAL
// row is left out of the chart. The workbook is saved in place.
func (f *Formatter) FormatWorkbook(path string) error {
	if err := fileutils.RequireFile(path); err != nil {
		return fmt.Errorf("cannot format report: %w", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("error opening workbook %s: %w", path, err)
	}
	defer func() {
		_ = wb.Close()
	}()

	current := wb.GetSheetName(wb.GetActiveSheetIndex())
	if current == "" {
		return fmt.Errorf("workbook %s has no worksheet", path)
	}
	if current != SheetName {
		if err := wb.SetSheetName(current, SheetName); err != nil {
			return fmt.Errorf("error renaming worksheet: %w", err)
		}
	}

	rows, err := wb.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("error reading worksheet: %w", err)
	}
	maxRow := len(rows)
	maxCol := 0
	for _, r := range rows {
		if len(r) > maxCol {
			maxCol = len(r)
		}
	}
	if maxRow == 0 || maxCol == 0 {
		f.logger.Warn("Report worksheet is empty, nothing to format", logging.Field{Key: logging.FieldFile, Value: path})
		return wb.Save()
	}

	styles, err := newStyleSet(wb)
	if err != nil {
		return err
	}
	if err := applyStyles(wb, styles, maxRow, maxCol); err != nil {
		return err
	}
	if err := sizeColumns(wb, rows, maxCol); err != nil {
		return err
	}

	charted, err := addChart(wb, rows)
	if err != nil {
		return err
	}

	if err := wb.Save(); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", path, err)
	}

	f.logger.Info("Formatted report",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: maxRow - 1},
		logging.Field{Key: "chart", Value: charted})
	return nil
}

func newStyleSet(wb *excelize.File) (styleSet, error) {
	border := []excelize.Border{
		{Type: "left", Color: BorderColor, Style: 1},
		{Type: "right", Color: BorderColor, Style: 1},
		{Type: "top", Color: BorderColor, Style: 1},
		{Type: "bottom", Color: BorderColor, Style: 1},
	}
	alignment := &excelize.Alignment{Vertical: "center", WrapText: true}
	currency := CurrencyFmt
	stripe := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{StripeFill}}

	defs := []*excelize.Style{
		{
			Border:    border,
			Alignment: alignment,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HeaderFill}},
			Font:      &excelize.Font{Bold: true, Color: HeaderFont, Size: 12},
		},
		{Border: border, Alignment: alignment},
		{Border: border, Alignment: alignment, Fill: stripe},
		{Border: border, Alignment: alignment, CustomNumFmt: &currency},
		{Border: border, Alignment: alignment, Fill: stripe, CustomNumFmt: &currency},
	}

	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := wb.NewStyle(def)
		if err != nil {
			return styleSet{}, fmt.Errorf("error creating report style: %w", err)
		}
		ids[i] = id
	}
	return styleSet{header: ids[0], plain: ids[1], stripe: ids[2], amount: ids[3], amountStripe: ids[4]}, nil
}

// applyStyles styles row 1 as the header and stripes even-numbered data rows.
func applyStyles(wb *excelize.File, s styleSet, maxRow, maxCol int) error {
	lastCol, err := excelize.ColumnNumberToName(maxCol)
	if err != nil {
		return err
	}
	if err := wb.SetCellStyle(SheetName, "A1", lastCol+"1", s.header); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for row := 2; row <= maxRow; row++ {
		base, amount := s.plain, s.amount
		if row%2 == 0 {
			base, amount = s.stripe, s.amountStripe
		}
		first := fmt.Sprintf("A%d", row)
		last := fmt.Sprintf("%s%d", lastCol, row)
		if err := wb.SetCellStyle(SheetName, first, last, base); err != nil {
			return fmt.Errorf("error styling row %d: %w", row, err)
		}
		if maxCol >= amountColumn {
			cell := fmt.Sprintf("%s%d", amountColName, row)
			if err := wb.SetCellStyle(SheetName, cell, cell, amount); err != nil {
				return fmt.Errorf("error styling amount in row %d: %w", row, err)
			}
		}
	}
	return nil
}

// sizeColumns sets each column to its longest value plus padding.
func sizeColumns(wb *excelize.File, rows [][]string, maxCol int) error {
	for col := 1; col <= maxCol; col++ {
		longest := 0
		for _, r := range rows {
			if col-1 < len(r) && len([]rune(r[col-1])) > longest {
				longest = len([]rune(r[col-1]))
			}
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := wb.SetColWidth(SheetName, name, name, float64(longest+widthPadding)); err != nil {
			return fmt.Errorf("error sizing column %s: %w", name, err)
		}
	}
	return nil
}

// addChart reports whether a chart was added.
func addChart(wb *excelize.File, rows [][]string) (bool, error) {
	maxRow := len(rows)
	if maxRow-1 <= 1 {
		return false, nil
	}

	lastData := maxRow
	if last := rows[maxRow-1]; len(last) > 1 && strings.EqualFold(strings.TrimSpace(last[1]), models.TotalCategory) {
		lastData--
	}
	if lastData < 2 {
		return false, nil
	}

	ref := func(col string, from, to int) string {
		return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", SheetName, col, from, col, to)
	}

	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$%s$1", SheetName, amountColName),
				Categories: ref(categoryCol, 2, lastData),
				Values:     ref(amountColName, 2, lastData),
			},
		},
		Title:  []excelize.RichTextRun{{Text: ChartTitle}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}

	anchor := fmt.Sprintf("A%d", maxRow+chartGapRows)
	if err := wb.AddChart(SheetName, anchor, chart); err != nil {
		return false, fmt.Errorf("error adding chart: %w", err)
	}
	return true, nil
}
