// Package export writes the formatted Excel report
package export

import (
	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/validation"
)

var output string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export all expenses with a TOTAL row to a formatted Excel report",
	Args:  cobra.NoArgs,
	RunE:  exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Report file (default: export.path)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = app.GetConfig().Export.Path
	}
	if err := validation.IsValidReportPath(path); err != nil {
		return err
	}

	if err := app.GetController().ExportReport(common.Context(cmd), path); err != nil {
		return err
	}
	common.Success(cmd.OutOrStdout(), "Report written to %s", path)
	return nil
}
