package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/models"
)

// CSVBackend keeps the record set in one comma-separated file with a header row.
type CSVBackend struct {
	path string
}

// NewCSVBackend returns a backend for the CSV file at path.
func NewCSVBackend(path string) *CSVBackend {
	return &CSVBackend{path: path}
}

// Name implements Backend.
func (b *CSVBackend) Name() string { return BackendCSV }

// Location implements Backend.
func (b *CSVBackend) Location() string { return b.path }

// Read implements Backend.
func (b *CSVBackend) Read(_ context.Context) ([]models.Expense, error) {
	file, err := os.Open(b.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	var rows []expenseRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.Expense{}, nil
		}
		return nil, fmt.Errorf("error parsing CSV file %s: %w", b.path, err)
	}

	return decodeRows(BackendCSV, rows)
}

// Write implements Backend.
func (b *CSVBackend) Write(_ context.Context, records []models.Expense) error {
	if err := fileutils.EnsureParentDir(b.path); err != nil {
		return err
	}

	file, err := os.OpenFile(b.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionDataFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file %s: %w", b.path, err)
	}
	return b.writeRows(file, encodeRows(records))
}

// writeRows marshals rows to w and closes it. A close failure is reported
// when the marshal succeeded.
func (b *CSVBackend) writeRows(w io.WriteCloser, rows []expenseRow) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing CSV file %s: %w", b.path, cerr)
		}
	}()

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error writing CSV file %s: %w", b.path, err)
	}
	return nil
}
