package store

import (
	"context"

	"fjacquet/spendlens/internal/models"
)

// MockStore is an in-memory Store for testing.
type MockStore struct {
	Records []models.Expense

	// Error flags for testing error conditions
	SaveAllError error
	AppendError  error
	ClearError   error

	SaveCalls int
}

// Load returns a copy of the records.
func (m *MockStore) Load(_ context.Context) []models.Expense {
	out := make([]models.Expense, len(m.Records))
	copy(out, m.Records)
	return out
}

// SaveAll replaces the records.
func (m *MockStore) SaveAll(_ context.Context, records []models.Expense) error {
	m.SaveCalls++
	if m.SaveAllError != nil {
		return m.SaveAllError
	}
	m.Records = append([]models.Expense(nil), records...)
	return nil
}

// Append adds one record.
func (m *MockStore) Append(_ context.Context, record models.Expense) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.Records = append(m.Records, record)
	return nil
}

// ClearAll drops every record.
func (m *MockStore) ClearAll(_ context.Context) error {
	if m.ClearError != nil {
		return m.ClearError
	}
	m.Records = nil
	return nil
}

// MemoryBackend is a Backend holding rows in memory, for testing the store
// policy without a file.
type MemoryBackend struct {
	Rows       []models.Expense
	Written    bool
	ReadError  error
	WriteError error
}

// Name implements Backend.
func (m *MemoryBackend) Name() string { return "memory" }

// Location implements Backend.
func (m *MemoryBackend) Location() string { return "memory" }

// Read implements Backend.
func (m *MemoryBackend) Read(_ context.Context) ([]models.Expense, error) {
	if m.ReadError != nil {
		return nil, m.ReadError
	}
	out := make([]models.Expense, len(m.Rows))
	copy(out, m.Rows)
	return out, nil
}

// Write implements Backend.
func (m *MemoryBackend) Write(_ context.Context, records []models.Expense) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Rows = append([]models.Expense(nil), records...)
	m.Written = true
	return nil
}
