package list

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
)

func setupList(t *testing.T) {
	t.Helper()
	color.NoColor = true
	app, _ := common.NewTestApp(t)
	root.SetApp(app)
	t.Cleanup(func() {
		root.SetApp(nil)
		from, to = "", ""
	})

	ctx := context.Background()
	for day, note := range map[int]string{10: "Lunch", 12: "Coffee", 14: "Cinema"} {
		d := time.Date(2025, 10, day, 0, 0, 0, 0, time.Local)
		amount := decimal.NewFromInt(int64(day))
		_, err := app.GetController().AddExpense(ctx, note, "Food", &amount, &d)
		require.NoError(t, err)
	}
}

func runList(t *testing.T) (string, error) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := listFunc(cmd, nil)
	return buf.String(), err
}

func TestListCommand_All(t *testing.T) {
	setupList(t)
	out, err := runList(t)
	require.NoError(t, err)
	assert.Contains(t, out, "3 expenses, $36.00 total")
}

func TestListCommand_Range(t *testing.T) {
	setupList(t)

	from, to = "2025-10-11", "2025-10-14"
	out, err := runList(t)
	require.NoError(t, err)
	assert.Contains(t, out, "2 expenses, $26.00 total")
	assert.NotContains(t, out, "Lunch")

	from, to = "", "2025-10-10"
	out, err = runList(t)
	require.NoError(t, err)
	assert.Contains(t, out, "1 expense, $10.00 total")

	from, to = "2025-10-20", ""
	out, err = runList(t)
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses recorded.")
}

func TestListCommand_InvalidRange(t *testing.T) {
	setupList(t)

	from, to = "2025-10-14", "2025-10-01"
	_, err := runList(t)
	assert.ErrorContains(t, err, "must not be before")

	from, to = "yesterday", ""
	_, err = runList(t)
	assert.Error(t, err)
}
