// Package main is the entry point for the postman-exporter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlevkov/postman-exporter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	envAPIKey        = "POSTMAN_API_KEY"
	secretsDir       = ".secrets/"
	defaultUserAgent = "postman-exporter/0.1"
)

// rootCmd is the base command for the postman-exporter CLI.
var rootCmd = &cobra.Command{
	Use:   "postman-exporter",
	Short: "Export, archive, and schedule Postman collection exports",
	Long: `postman-exporter exports named Postman collections from the Postman API to
local JSON files. The exported directory can be bundled into an archive, and
either action can be scheduled via the host's crontab.

The API key is taken from the --api-key flag, the POSTMAN_API_KEY environment
variable, or .secrets/postman-api-key, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./postman-exporter.yaml or ~/.config/postman-exporter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("postman-exporter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "postman-exporter"))
		}
	}

	viper.SetDefault("logging.level", "info")

	viper.SetEnvPrefix("POSTMAN_EXPORTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveAPIKey picks the credential once, at the CLI boundary: the
// --api-key flag wins over the POSTMAN_API_KEY environment variable, which
// wins over the .secrets/ file. An empty result is reported by the postman
// package when an operation starts.
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envAPIKey); v != "" {
		return v
	}
	if v, err := secrets.APIKey(secretsDir); err == nil {
		return v
	}
	return ""
}

// fail prints err in red on stderr and returns it so cobra exits non-zero.
func fail(err error) error {
	color.New(color.FgRed).Fprintln(os.Stderr, err)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
