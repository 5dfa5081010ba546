// Package config prints the effective configuration
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/root"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration (API keys are never shown)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		cfg := app.GetConfig()
		out := cmd.OutOrStdout()

		fmt.Fprint(out, cfg.String())
		keyState := "not set"
		if cfg.AI.ResolvedAPIKey() != "" {
			keyState = "set"
		}
		fmt.Fprintf(out, "# %s API key: %s\n", cfg.AI.Provider, keyState)

		backend := app.GetBackend()
		fmt.Fprintf(out, "# storage: %s at %s\n", backend.Name(), backend.Location())
		if client := app.GetAIClient(); client != nil {
			fmt.Fprintf(out, "# ai: %s\n", client.Name())
		} else {
			fmt.Fprintln(out, "# ai: disabled")
		}
		return nil
	},
}
