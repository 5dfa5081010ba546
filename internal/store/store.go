// Package store persists expense records through pluggable tabular backends
// and manages the list of known categories.
package store

import (
	"context"
	"errors"
	"os"

	"fjacquet/spendlens/internal/expenseerror"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"
)

// Store is the record-set contract the controller depends on.
type Store interface {
	Load(ctx context.Context) []models.Expense
	SaveAll(ctx context.Context, records []models.Expense) error
	Append(ctx context.Context, record models.Expense) error
	ClearAll(ctx context.Context) error
}

// ExpenseStore applies the load and save policy on top of a Backend.
//
// Append is a read-modify-write of the whole set with no lock: two writers
// racing on the same backing data lose one of the appends.
type ExpenseStore struct {
	backend Backend
	logger  logging.Logger
}

// NewExpenseStore wraps backend. A nil logger falls back to the default logger.
func NewExpenseStore(backend Backend, logger logging.Logger) *ExpenseStore {
	return &ExpenseStore{
		backend: backend,
		logger:  logging.OrDefault(logger),
	}
}

// Backend returns the wrapped backend.
func (s *ExpenseStore) Backend() Backend {
	return s.backend
}

func (s *ExpenseStore) fields() []logging.Field {
	return []logging.Field{
		{Key: logging.FieldBackend, Value: s.backend.Name()},
		{Key: logging.FieldFile, Value: s.backend.Location()},
	}
}

// Load returns the stored records in order, without summary rows and rows
// lacking a category. It never fails: missing data yields an empty slice
// and unreadable data is logged and also yields an empty slice.
func (s *ExpenseStore) Load(ctx context.Context) []models.Expense {
	records, err := s.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("No expense data found, starting empty", s.fields()...)
		} else {
			s.logger.WithError(err).Error("Failed to load expenses", s.fields()...)
		}
		return []models.Expense{}
	}

	kept := make([]models.Expense, 0, len(records))
	for _, r := range records {
		if r.Category == "" || r.IsTotal() {
			continue
		}
		kept = append(kept, r)
	}

	s.logger.Debug("Loaded expenses", append(s.fields(), logging.Field{Key: logging.FieldCount, Value: len(kept)})...)
	return kept
}

// SaveAll replaces the whole backing record set with records.
func (s *ExpenseStore) SaveAll(ctx context.Context, records []models.Expense) error {
	if records == nil {
		records = []models.Expense{}
	}
	if err := s.backend.Write(ctx, records); err != nil {
		s.logger.WithError(err).Error("Failed to save expenses", s.fields()...)
		var storageErr *expenseerror.StorageError
		if errors.As(err, &storageErr) {
			return err
		}
		return &expenseerror.StorageError{
			Backend: s.backend.Name(),
			Op:      "write",
			Path:    s.backend.Location(),
			Err:     err,
		}
	}
	s.logger.Info("Saved expenses", append(s.fields(), logging.Field{Key: logging.FieldCount, Value: len(records)})...)
	return nil
}

// Append loads the current set, adds record and saves everything back.
func (s *ExpenseStore) Append(ctx context.Context, record models.Expense) error {
	records := s.Load(ctx)
	records = append(records, record)
	if err := s.SaveAll(ctx, records); err != nil {
		return err
	}
	s.logger.Info("Added expense",
		logging.Field{Key: logging.FieldCategory, Value: record.Category},
		logging.Field{Key: logging.FieldAmount, Value: record.Amount.StringFixed(2)})
	return nil
}

// ClearAll removes every stored record.
func (s *ExpenseStore) ClearAll(ctx context.Context) error {
	if err := s.SaveAll(ctx, nil); err != nil {
		return err
	}
	s.logger.Info("Cleared all expenses", s.fields()...)
	return nil
}
