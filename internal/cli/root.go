// Package cli implements the finx command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/finshare/finx/internal/model"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "finx",
	Short: "FinX - extract transaction candidates from bank SMS and receipts",
	Long: `FinX turns noisy financial text into structured expense data.

It extracts tentative transaction candidates from bank SMS notifications
and structured fields from receipt OCR text, using ordered pattern tables
with first-match-wins semantics.

Extraction is best-effort and never fails on malformed input: an SMS the
patterns do not recognize simply yields no candidate, and a receipt with
no recognizable fields yields an empty extraction. Every candidate
carries a confidence score so callers can decide between auto-fill,
review, and manual entry.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("finx v0.3.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.finx/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".finx"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match FINX_*
	viper.SetEnvPrefix("FINX")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	// The config file uses the yaml key names; durations may be written as
	// "1h" style strings.
	err := viper.Unmarshal(cfg,
		viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()),
		func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" },
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: bad config file, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}

	if cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".finx", "cache")
		}
	}

	// Secrets come only from the environment, never the config file.
	cfg.Backend.APIToken = os.Getenv("FINX_API_TOKEN")
	cfg.Output.Verbose = verbose

	return cfg
}

// applyLLMFlags configures the categorization provider from CLI flags. API
// keys are read from the environment only.
func applyLLMFlags(cfg *model.Config, provider, modelName string) error {
	cfg.LLM.Provider = provider
	if modelName != "" {
		cfg.LLM.Model = modelName
	}

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
