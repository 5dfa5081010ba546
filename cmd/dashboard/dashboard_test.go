package dashboard

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
)

func TestDashboardCommand(t *testing.T) {
	color.NoColor = true
	app, _ := common.NewTestApp(t)
	root.SetApp(app)
	defer root.SetApp(nil)

	ctx := context.Background()
	for _, e := range []struct {
		text, category, amount string
	}{
		{"Lunch at Chipotle", "Food", "25.50"},
		{"Shell station", "Gas", "45.00"},
		{"Starbucks coffee", "Food", "15.75"},
	} {
		amount := decimal.RequireFromString(e.amount)
		_, err := app.GetController().AddExpense(ctx, e.text, e.category, &amount, nil)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, Cmd.RunE(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Total spending: $86.25 across 3 expenses")
	assert.Contains(t, out, "$45.00")
	assert.Contains(t, out, "$41.25")
}
