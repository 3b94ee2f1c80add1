// README: voyager CLI; runs the planner in-process against files on disk.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "voyager",
	Short: "Plan, revise, book and export trips from the command line",
	Long: `voyager runs the itinerary planner without the HTTP server.
Inputs are JSON or YAML files; results are printed as JSON unless --out is given.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newGenerateCmd(), newReviseCmd(), newBookCmd(), newExportCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.voyager.yaml)")
	flags.String("provider", "openai", "generation provider: openai, gemini or fixture")
	flags.String("fixtures", "fixtures", "fixture directory for the fixture provider")
	flags.String("log-level", "warn", "log level written to stderr")

	_ = viper.BindPFlag("ai.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("ai.fixture_dir", flags.Lookup("fixtures"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
}

func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".voyager")
	}

	viper.SetEnvPrefix("VOYAGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("ai.openai_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("ai.gemini_key", "GEMINI_API_KEY")
	viper.SetDefault("ai.openai_model", "gpt-4-turbo-preview")
	viper.SetDefault("ai.gemini_model", "gemini-2.0-flash")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}
