// ocxinspect inspects XML Schema models: it prints schema summaries,
// the resolved shape of individual elements, and the differences between
// two schema versions.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ocxtools/xsdmodel"
)

var rootCmd = &cobra.Command{
	Use:   "ocxinspect",
	Short: "Inspect XML Schema models",
	Long: `ocxinspect resolves an XML Schema into a model of its global
elements and reports on it: schema summaries, the effective attribute and
child sets of individual elements, and version-to-version differences.

Schema locations are file paths or http(s) URLs. Frequently used schemas
can be given short aliases in the configuration file.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "configuration file")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache directory for downloaded schemas")
	rootCmd.PersistentFlags().Bool("remote", false, "allow http(s) schema locations")
	rootCmd.PersistentFlags().Bool("yaml", false, "emit yaml instead of tables")

	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("remote", rootCmd.PersistentFlags().Lookup("remote"))

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(elementCmd)
	rootCmd.AddCommand(diffCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ocxinspect")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetDefault("cache_dir", "")
	viper.SetDefault("remote", false)
	viper.SetEnvPrefix("OCXINSPECT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "read config: %v\n", err)
		}
	}
}

// resolveLocation maps a configured schema alias to its location; anything
// else passes through as a path or URL.
func resolveLocation(arg string) string {
	aliases := viper.GetStringMapString("schemas")
	if location, ok := aliases[arg]; ok {
		return location
	}
	return arg
}

func loadModel(ctx context.Context, arg string) (*xsdmodel.SchemaModel, error) {
	opts := xsdmodel.LoadOptions{
		CacheDir: viper.GetString("cache_dir"),
	}
	if viper.GetBool("remote") {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return xsdmodel.LoadWithOptions(ctx, resolveLocation(arg), opts)
}

func yamlOutput(cmd *cobra.Command) bool {
	yes, _ := cmd.Root().PersistentFlags().GetBool("yaml")
	return yes
}
