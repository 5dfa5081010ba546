// Package categories lists and extends the selectable expense categories
package categories

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/cmd/common"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/internal/models"
)

var addCategory string

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the expense categories, or add one with --add",
	Args:  cobra.NoArgs,
	RunE:  categoriesFunc,
}

func init() {
	Cmd.Flags().StringVar(&addCategory, "add", "", "Add a category to the categories file")
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	categoryStore := app.GetCategoryStore()
	out := cmd.OutOrStdout()

	list, err := categoryStore.LoadCategories()
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(addCategory); name != "" {
		if models.IsReservedCategory(name) {
			return fmt.Errorf("category %s is reserved for report totals", name)
		}
		for _, c := range list {
			if strings.EqualFold(c, name) {
				common.Warn(out, "Category %s already exists.", c)
				return nil
			}
		}
		list = append(list, name)
		if err := categoryStore.SaveCategories(list); err != nil {
			return err
		}
		common.Success(out, "Added category %s.", name)
		return nil
	}

	for _, c := range list {
		fmt.Fprintln(out, c)
	}
	return nil
}
