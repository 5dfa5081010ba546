package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeFailWriter struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (w *closeFailWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func TestCSVBackend_WriteRowsReportsCloseError(t *testing.T) {
	b := NewCSVBackend("expenses.csv")
	diskFull := errors.New("no space left on device")
	w := &closeFailWriter{closeErr: diskFull}

	err := b.writeRows(w, encodeRows(sampleExpenses()))
	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	assert.Contains(t, err.Error(), "error closing CSV file expenses.csv")
	assert.True(t, w.closed)
}

func TestCSVBackend_WriteRowsClosesOnSuccess(t *testing.T) {
	b := NewCSVBackend("expenses.csv")
	w := &closeFailWriter{}

	require.NoError(t, b.writeRows(w, encodeRows(sampleExpenses())))
	assert.True(t, w.closed)
	assert.Contains(t, w.String(), "Lunch at Chipotle")
}
