package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fermi-lat/tooldesc/log"
	"github.com/fermi-lat/tooldesc/tool"
)

var showCmd = &cobra.Command{
	Use:   "show TOOL",
	Args:  cobra.ExactArgs(1),
	Short: "Prints the registrations a tool descriptor performs",
	Long: `Runs the descriptor against a recording environment and prints every tool
registration in the order it happens.`,
	RunE: runShow,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeToolNames(args), cobra.ShellCompDirectiveNoFileComp
	},
}

var showDepsOnly bool
var showPackage string
var showOptions []string

func init() {
	showCmd.Flags().BoolVar(&showDepsOnly, "deps-only", false, "Only register the dependencies, not the library itself")
	showCmd.Flags().StringVar(&showPackage, "package", "", "Group the library under this package")
	showCmd.Flags().StringArrayVarP(&showOptions, "option", "o", nil, "Generate option as key=value (repeatable)")
	rootCmd.AddCommand(showCmd)
}

func completeToolNames(args []string) []string {
	if len(args) != 0 {
		return nil
	}
	catalog, _, err := loadCatalog()
	if err != nil {
		return nil
	}
	return catalog.Names()
}

func showOptionsFor(cmd *cobra.Command, defaults tool.Options) (tool.Options, error) {
	kw := map[string]interface{}{
		"depsOnly": defaults.DepsOnly,
		"package":  defaults.Package,
	}
	if cmd.Flags().Changed("deps-only") {
		kw["depsOnly"] = showDepsOnly
	}
	if cmd.Flags().Changed("package") {
		kw["package"] = showPackage
	}
	for _, option := range showOptions {
		parts := strings.SplitN(option, "=", 2)
		if len(parts) != 2 {
			return tool.Options{}, fmt.Errorf("option %q is not of the form key=value", option)
		}
		kw[parts[0]] = parts[1]
	}
	return tool.ParseOptions(kw)
}

func runShow(cmd *cobra.Command, args []string) error {
	catalog, cfg, err := loadCatalog()
	if err != nil {
		return err
	}

	descriptor, ok := catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown tool %q", args[0])
	}

	opts, err := showOptionsFor(cmd, tool.Options{DepsOnly: cfg.DepsOnly, Package: cfg.Package})
	if err != nil {
		return err
	}
	log.Debug("Generating '%s' with options %+v.\n", descriptor.Name, opts)

	env := &tool.Recorder{}
	descriptor.Generate(env, opts)
	log.Debug("Registered %s.\n", strings.Join(env.Names(), ", "))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", descriptor.Name)
	for _, reg := range env.Registrations {
		fmt.Fprintf(out, "  %s", reg.Name)
		if len(reg.Options.Library) != 0 {
			fmt.Fprintf(out, " library=[%s]", strings.Join(reg.Options.Library, " "))
		}
		if reg.Options.Package != "" {
			fmt.Fprintf(out, " package=%s", reg.Options.Package)
		}
		fmt.Fprintln(out)
	}
	return nil
}
