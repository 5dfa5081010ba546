package store

import (
	"context"

	"fjacquet/spendlens/internal/models"
)

// Backend is one concrete tabular storage medium. Implementations read and
// write the whole record set; the policy around them lives in ExpenseStore.
type Backend interface {
	// Name identifies the backend in logs and errors ("csv", "xlsx", ...).
	Name() string

	// Location describes where the data lives (a path or a sheet reference).
	Location() string

	// Read returns every stored row. When no backing data exists yet the
	// error satisfies errors.Is(err, os.ErrNotExist).
	Read(ctx context.Context) ([]models.Expense, error)

	// Write replaces the stored rows with records.
	Write(ctx context.Context, records []models.Expense) error
}

// Backend names accepted by the storage.backend setting.
const (
	BackendCSV    = "csv"
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// FileBackendNames lists the backends that keep their data in a local file.
func FileBackendNames() []string {
	return []string{BackendCSV, BackendXLSX, BackendSQLite}
}
