package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fermi-lat/tooldesc/tool"
)

var existsCmd = &cobra.Command{
	Use:   "exists TOOL",
	Args:  cobra.ExactArgs(1),
	Short: "Checks whether a tool descriptor is available",
	Long:  `Prints 1 if the tool descriptor is known and reports itself as available.`,
	RunE:  runExists,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeToolNames(args), cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	rootCmd.AddCommand(existsCmd)
}

func runExists(cmd *cobra.Command, args []string) error {
	catalog, _, err := loadCatalog()
	if err != nil {
		return err
	}

	descriptor, ok := catalog.Lookup(args[0])
	if !ok || !descriptor.Exists(&tool.Recorder{}) {
		return fmt.Errorf("tool %q does not exist", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), 1)
	return nil
}
