package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fermi-lat/tooldesc/config"
	"github.com/fermi-lat/tooldesc/log"
	"github.com/fermi-lat/tooldesc/manifest"
	"github.com/fermi-lat/tooldesc/tool"
	"github.com/fermi-lat/tooldesc/util"
)

var rootCmd = &cobra.Command{
	Use:   "tooldesc",
	Short: "Inspects build tool descriptors",
	Long: `tooldesc inspects build tool descriptors: the declarations that register a
library target with the build environment together with the tools it depends on.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
	},
}

var configFile string
var toolsFiles []string

func init() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringArrayVarP(&toolsFiles, "tools", "f", nil, "Additional TOOLS.yaml file (repeatable)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("%s\n", err)
	}
	if log.ErrorOccured() {
		os.Exit(1)
	}
}

// loadCatalog returns the builtin descriptors plus those declared in the configured
// TOOLS.yaml files. Without any configured file, the nearest TOOLS.yaml above the
// working directory is used if there is one.
func loadCatalog() (*tool.Catalog, config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, cfg, err
	}

	files := append(append([]string{}, cfg.Tools...), toolsFiles...)
	if len(files) == 0 {
		if workingDir, err := os.Getwd(); err == nil {
			if found, err := util.FindToolsFile(workingDir); err == nil {
				log.Debug("Using '%s'.\n", found)
				files = append(files, found)
			}
		}
	}

	catalog, err := manifest.LoadCatalog(files...)
	if err != nil {
		return nil, cfg, err
	}
	log.Debug("Catalog holds %d descriptors.\n", catalog.Len())
	return catalog, cfg, nil
}
