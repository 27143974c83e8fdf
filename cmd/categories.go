package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// categoriesCmd lists the blog's categories.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the blog's categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		categories, err := appInstance.CategoryStore.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Slug", "Description"})
		table.SetBorder(false)
		for _, c := range categories {
			table.Append([]string{c.ID, c.Name, c.Slug, c.Description})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
