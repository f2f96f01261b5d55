package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "Lists all tool descriptors",
	Long:  `Lists all tool descriptors together with their target library and number of dependencies.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	catalog, _, err := loadCatalog()
	if err != nil {
		return err
	}

	for _, d := range catalog.Descriptors() {
		pkg := d.Package
		if pkg == "" {
			pkg = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d deps\n", d.Name, d.Target, pkg, len(d.Deps))
	}
	return nil
}
