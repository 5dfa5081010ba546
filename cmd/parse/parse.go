// Package parse previews what would be detected in an expense sentence
package parse

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Show the amount and date detected in a sentence without saving it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	text := common.JoinArgs(args)
	if text == "" {
		return fmt.Errorf("text is required")
	}
	common.PrintParsed(cmd.OutOrStdout(), app.GetParser().ParseExpense(text))
	return nil
}
