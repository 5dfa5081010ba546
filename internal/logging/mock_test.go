package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	boom := errors.New("boom")

	mock.WithField(FieldBackend, "xlsx").WithError(boom).Error("Failed to read expenses")
	mock.Info("ExpenseController initialized")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, boom, entries[0].Error)
	assert.Equal(t, []Field{{Key: FieldBackend, Value: "xlsx"}}, entries[0].Fields)

	assert.True(t, mock.HasEntry("INFO", "ExpenseController initialized"))
	assert.True(t, mock.HasMessageContaining("read expenses"))
	assert.Len(t, mock.GetEntriesByLevel("ERROR"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Warn("empty text")
	mock.Fatalf("exit %d", 1)

	assert.True(t, mock.HasEntry("WARN", "empty text"))
	assert.True(t, mock.HasEntry("FATAL", "exit 1"))
}
