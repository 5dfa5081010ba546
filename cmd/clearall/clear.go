// Package clearall removes every stored expense
package clearall

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
)

var yes bool

// Cmd represents the clear command
var Cmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored expenses",
	Long:  `Delete all stored expenses. The backing file is rewritten with the header row only.`,
	Args:  cobra.NoArgs,
	RunE:  clearFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
}

func clearFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := common.Context(cmd)

	if !yes {
		stored := len(app.GetStore().Load(ctx))
		common.Warn(out, "This deletes every stored expense (%d in %s). Type 'yes' to continue:",
			stored, app.GetBackend().Location())
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "yes" && a != "y" {
			common.Warn(out, "Aborted.")
			return nil
		}
	}

	if err := app.GetController().ClearAll(ctx); err != nil {
		return err
	}
	common.Success(out, "All expenses cleared.")
	return nil
}
