// Package add handles the command that logs a new expense
package add

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/validation"
)

var (
	category  string
	amount    string
	date      string
	audioFile string
	noSuggest bool
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add [TEXT...]",
	Short: "Log an expense described in plain language",
	Long: `Log an expense from a sentence such as "Spent $15 at Starbucks yesterday".
The amount and date are detected from the text unless given with --amount and
--date. With --audio the sentence is transcribed from a recording first.
Without --category a category is suggested from keywords in the text.`,
	Example: `  spendlens add Spent 15 dollars on lunch today -c Food
  spendlens add "Paid for parking" -a 7.50 -d 2025-10-10 -c Transportation
  spendlens add --audio memo.m4a -c Food`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Expense category (default: Uncategorized)")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, overrides the detected amount")
	Cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD, overrides the detected date")
	Cmd.Flags().StringVar(&audioFile, "audio", "", "Audio recording to transcribe instead of TEXT")
	Cmd.Flags().BoolVar(&noSuggest, "no-suggest", false, "Do not suggest a category when --category is omitted")
}

func addFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	ctx := common.Context(cmd)
	ctrl := app.GetController()
	out := cmd.OutOrStdout()

	text := common.JoinArgs(args)
	if audioFile != "" {
		if text != "" {
			return fmt.Errorf("provide either TEXT or --audio, not both")
		}
		if err := validation.IsValidAudioFile(audioFile); err != nil {
			return err
		}
		f, err := os.Open(audioFile)
		if err != nil {
			return fmt.Errorf("failed to open audio file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()

		text, err = ctrl.Transcribe(ctx, f, filepath.Base(audioFile))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Transcribed: %s\n", text)
	}
	if text == "" {
		return fmt.Errorf("expense text is required")
	}

	manualAmount, err := common.ParseAmountFlag(amount)
	if err != nil {
		return err
	}
	manualDate, err := common.ParseDateFlag(date)
	if err != nil {
		return err
	}

	chosen := category
	if chosen == "" && !noSuggest {
		if suggested, ok := app.GetCategorizer().Suggest(ctx, text); ok {
			chosen = suggested
			fmt.Fprintf(out, "Category: %s (suggested)\n", suggested)
		}
	}

	e, err := ctrl.AddExpense(ctx, text, app.GetCategoryStore().NormalizeCategory(chosen), manualAmount, manualDate)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	common.Success(out, "Saved: %s", e.String())
	if manualAmount == nil && e.Amount.IsZero() {
		common.Warn(out, "No amount detected; saved as $0.00. Use --amount to set it.")
	}
	return nil
}
