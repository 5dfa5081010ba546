// Package dashboard prints the spending summary
package dashboard

import (
	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
)

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show total spending and a per-category breakdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		common.PrintDashboard(cmd.OutOrStdout(), app.GetController().Dashboard(common.Context(cmd)))
		return nil
	},
}
