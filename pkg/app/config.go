package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

var cfgFile string

func addConfigFlag(basename string, fs *pflag.FlagSet) {
	fs.StringVarP(&cfgFile, configFlagName, "c", cfgFile, "Read configuration from specified `FILE`, "+
		"support JSON, TOML, YAML, HCL, or Java properties formats.")

	viper.AutomaticEnv()
	viper.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(basename), "-", "_"))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cobra.OnInitialize(func() {
		if err := LoadConfig(cfgFile, basename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read configuration file(%s): %v\n", cfgFile, err)
			os.Exit(1)
		}
	})
}

// LoadConfig reads cfg, or looks for <basename>.yaml in the usual places when cfg is empty.
// A missing default file is not an error.
func LoadConfig(cfg, basename string) error {
	if cfg != "" {
		viper.SetConfigFile(cfg)
		return viper.ReadInConfig()
	}

	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".pokedex"))
	}
	viper.AddConfigPath("/etc/pokedex")
	viper.SetConfigName(FormatBaseName(basename))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}
