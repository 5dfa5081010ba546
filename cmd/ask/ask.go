// Package ask answers questions about the stored expenses
package ask

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:     "ask QUESTION...",
	Short:   "Ask the AI assistant a question about your expenses",
	Example: `  spendlens ask How much did I spend on food this week?`,
	RunE:    askFunc,
}

func askFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	answer := app.GetController().Ask(common.Context(cmd), common.JoinArgs(args))
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
