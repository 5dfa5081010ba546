// Package list prints stored expenses
package list

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/models"
)

var (
	from string
	to   string
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List stored expenses, optionally within a date range",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	Cmd.Flags().StringVar(&from, "from", "", "First date to include (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&to, "to", "", "Last date to include (YYYY-MM-DD)")
}

func listFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	ctx := common.Context(cmd)
	ctrl := app.GetController()

	start, err := common.ParseDateFlag(from)
	if err != nil {
		return err
	}
	end, err := common.ParseDateFlag(to)
	if err != nil {
		return err
	}

	var records []models.Expense
	if start == nil && end == nil {
		records = ctrl.AllExpenses(ctx)
	} else {
		lo, hi := time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local)
		if start != nil {
			lo = *start
		}
		if end != nil {
			hi = *end
		}
		if hi.Before(lo) {
			return fmt.Errorf("--to must not be before --from")
		}
		records = ctrl.ExpensesBetween(ctx, lo, hi)
	}

	common.PrintExpenses(cmd.OutOrStdout(), records)
	return nil
}
