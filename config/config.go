package config

import (
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/fermi-lat/tooldesc/log"
)

type Config struct {
	// Tools lists additional TOOLS.yaml files.
	Tools []string
	// DepsOnly is the default of `show --deps-only`.
	DepsOnly bool
	// Package is the default package override of `show`.
	Package string
}

const configFileName = "config"
const envPrefix = "TOOLDESC"

func getConfigDir() (string, error) {
	if configDir, ok := os.LookupEnv("TOOLDESC_CONFIG_DIR"); ok {
		return configDir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return path.Join(xdgConfigHome, "tooldesc"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("unable to locate the configuration directory: %w", err)
	}
	return path.Join(homeDir, ".config", "tooldesc"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("tools", []string{})
	v.SetDefault("depsOnly", false)
	v.SetDefault("package", "")
	return v
}

// Load reads the configuration. If `configFile` is empty, config.yaml is looked up in the
// configuration directory, and a missing file yields the default configuration.
func Load(configFile string) (Config, error) {
	v := newViper()

	if configFile != "" {
		expanded, err := homedir.Expand(configFile)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(expanded)
	} else {
		configDir, err := getConfigDir()
		if err != nil {
			log.Debug("%s. Using default configuration.\n", err)
			return decode(v)
		}
		v.SetConfigName(configFileName)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configFile == "" {
			log.Debug("No configuration file found. Using default configuration.\n")
			return decode(v)
		}
		return Config{}, fmt.Errorf("error reading configuration file: %w", err)
	}
	log.Debug("Loaded configuration from '%s'.\n", v.ConfigFileUsed())
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	config := Config{
		Tools:    v.GetStringSlice("tools"),
		DepsOnly: v.GetBool("depsOnly"),
		Package:  v.GetString("package"),
	}

	for i, toolsFile := range config.Tools {
		expanded, err := homedir.Expand(toolsFile)
		if err != nil {
			return Config{}, fmt.Errorf("invalid tools path %q: %w", toolsFile, err)
		}
		config.Tools[i] = expanded
	}

	log.Debug("Running with configuration: %+v\n", config)
	return config, nil
}
