package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fermi-lat/tooldesc/log"
	"github.com/fermi-lat/tooldesc/manifest"
	"github.com/fermi-lat/tooldesc/util"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Args:  cobra.NoArgs,
	Short: "Generates or diffs descriptor snapshots",
	Long:  `Generates or diffs descriptor snapshots.`,
}

var manifestAllowUncommittedChanges bool
var manifestOutput string
var exportOutput string

func init() {
	diffCommand := &cobra.Command{
		Use:   "diff [newSnapshot] oldSnapshot",
		Args:  cobra.RangeArgs(1, 2),
		Short: "Diffs two snapshots and lists their differences per tool",
		Long:  `Diffs two snapshots and lists their differences per tool. If [newSnapshot] is omitted, the current descriptors are compared against oldSnapshot.`,
		RunE:  runManifestDiff,
	}
	manifestCmd.AddCommand(diffCommand)

	generateCommand := &cobra.Command{
		Use:   "generate",
		Args:  cobra.NoArgs,
		Short: "Creates a snapshot file of the current descriptors",
		Long:  `Creates a snapshot file of the current descriptors, including the git revision they were read from.`,
		RunE:  runManifestGenerate,
	}
	generateCommand.Flags().BoolVar(&manifestAllowUncommittedChanges, "allow-uncommitted-changes", false, "Continues even if there are local uncommitted changes.")
	generateCommand.Flags().StringVarP(&manifestOutput, "output", "o", "manifest.yaml", "File where the snapshot will be stored")

	manifestCmd.AddCommand(generateCommand)

	exportCommand := &cobra.Command{
		Use:   "export [TOOL...]",
		Args:  cobra.ArbitraryArgs,
		Short: "Writes descriptors in the TOOLS.yaml format",
		Long:  `Writes the named descriptors, or all of them, in the TOOLS.yaml format. Without --output the result is printed.`,
		RunE:  runManifestExport,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeToolNames(nil), cobra.ShellCompDirectiveNoFileComp
		},
	}
	exportCommand.Flags().StringVarP(&exportOutput, "output", "o", "", "File where the descriptors will be stored")
	manifestCmd.AddCommand(exportCommand)
	rootCmd.AddCommand(manifestCmd)
}

func currentSnapshot(allowUncommittedChanges bool) (manifest.Snapshot, error) {
	catalog, _, err := loadCatalog()
	if err != nil {
		return manifest.Snapshot{}, err
	}
	workingDir, err := os.Getwd()
	if err != nil {
		return manifest.Snapshot{}, err
	}
	return manifest.Generate(catalog, workingDir, allowUncommittedChanges)
}

func runManifestDiff(cmd *cobra.Command, args []string) error {
	var newSnapshot, oldSnapshot manifest.Snapshot
	var err error

	if len(args) == 1 {
		newSnapshot, err = currentSnapshot(true)
		if err != nil {
			return err
		}
		if err := util.ReadYaml(args[0], &oldSnapshot); err != nil {
			return err
		}
	} else {
		if err := util.ReadYaml(args[0], &newSnapshot); err != nil {
			return err
		}
		if err := util.ReadYaml(args[1], &oldSnapshot); err != nil {
			return err
		}
	}

	diff, err := manifest.Diff(newSnapshot, oldSnapshot)
	if err != nil {
		return fmt.Errorf("error diffing snapshots: %w", err)
	}
	printDiff(cmd, diff)
	return nil
}

func printDiff(cmd *cobra.Command, diff manifest.DiffResult) {
	out := cmd.OutOrStdout()
	indent := func(level int, format string, a ...interface{}) {
		fmt.Fprintf(out, strings.Repeat("  ", level)+format, a...)
	}

	if !diff.Differ {
		indent(0, "Snapshots are identical.\n")
		return
	}

	if diff.ToolVersion != "" {
		indent(0, "%s\n", diff.ToolVersion)
	}

	printTools := func(title string, tools []manifest.Tool) {
		if len(tools) == 0 {
			return
		}
		indent(0, "%s:\n", title)
		for _, t := range util.SliceOrderedBy(tools, func(t *manifest.Tool) string { return t.Name }) {
			indent(1, "%s:\n", t.Name)
			indent(2, "Target: %s\n", t.Target)
			if t.Package != "" {
				indent(2, "Package: %s\n", t.Package)
			}
			indent(2, "Deps: %s\n", strings.Join(t.Deps, ", "))
		}
		indent(0, "\n")
	}
	printTools("Added tools", diff.AddedTools)
	printTools("Removed tools", diff.RemovedTools)

	if len(diff.ModifiedTools) == 0 {
		return
	}

	const redDash string = "\u001b[31;1m-\u001b[0m"
	const greenPlus string = "\u001b[32;1m+\u001b[0m"

	indent(0, "Modified tools:\n")
	for _, modified := range diff.ModifiedTools {
		indent(1, "%s:\n", modified.New.Name)
		if modified.New.Target != modified.Old.Target {
			indent(2, "Target changed from %q to %q\n", modified.Old.Target, modified.New.Target)
		}
		if modified.New.Package != modified.Old.Package {
			indent(2, "Package changed from %q to %q\n", modified.Old.Package, modified.New.Package)
		}
		for _, dep := range util.OrderedSlice(modified.AddedDeps) {
			indent(2, "%s %s\n", greenPlus, dep)
		}
		for _, dep := range util.OrderedSlice(modified.RemovedDeps) {
			indent(2, "%s %s\n", redDash, dep)
		}
		if modified.Reordered {
			indent(2, "Dependency order changed\n")
		}
	}
	indent(0, "\n")
}

func runManifestGenerate(cmd *cobra.Command, args []string) error {
	snapshot, err := currentSnapshot(manifestAllowUncommittedChanges)
	if err != nil {
		return err
	}

	if snapshot.Source.Revision != "" {
		log.Log("Descriptors taken from revision %s.\n", snapshot.Source.Revision)
	}
	if err := util.WriteYaml(manifestOutput, snapshot); err != nil {
		return err
	}
	log.Success("Wrote snapshot to '%s'.\n", manifestOutput)
	return nil
}

func runManifestExport(cmd *cobra.Command, args []string) error {
	catalog, _, err := loadCatalog()
	if err != nil {
		return err
	}

	descriptors := catalog.Descriptors()
	if len(args) != 0 {
		descriptors = descriptors[:0:0]
		for _, name := range args {
			d, ok := catalog.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown tool %q", name)
			}
			descriptors = append(descriptors, d)
		}
	}

	data, err := manifest.MarshalDescriptors(descriptors)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := ioutil.WriteFile(exportOutput, data, util.FileMode); err != nil {
		return err
	}
	log.Success("Wrote %d descriptors to '%s'.\n", len(descriptors), exportOutput)
	return nil
}
