// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the journal-trends CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journal-trends/internal/extract"
	"github.com/pdiddy/journal-trends/internal/secrets"
	"github.com/pdiddy/journal-trends/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultInput     = "data/top50_Soc_Pol.xlsx"
	defaultSheet     = "Sociology"
	defaultOutDir    = "outputs"
	defaultFromYear  = 2010
	defaultRate      = 10.0
	defaultDelay     = 500 * time.Millisecond
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "journal-trends/0.1"
)

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the journal-trends CLI.
var rootCmd = &cobra.Command{
	Use:   "journal-trends",
	Short: "Keyword prevalence trends for scholarly journal abstracts",
	Long: `journal-trends measures how often machine-learning terminology appears in
the abstracts of a curated list of journals, using OpenAlex publication
metadata. It is a batch pipeline: resolve journals, extract raw works, scan
abstracts against a keyword rule table, aggregate per-(journal, year,
keyword) prevalence, and visualize the trends.

Each stage is a subcommand reading the previous stage's artifact from the
output directory and fully regenerating its own.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./journal-trends.yaml or ~/.config/journal-trends/config.yaml)")
	rootCmd.PersistentFlags().String("input", defaultInput, "journal list workbook (.xlsx)")
	rootCmd.PersistentFlags().String("sheet", defaultSheet, "workbook sheet (discipline) to process")
	rootCmd.PersistentFlags().String("out-dir", defaultOutDir, "artifact output directory")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal-trends")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journal-trends"))
		}
	}

	viper.SetEnvPrefix("JOURNAL_TRENDS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Settings resolve in flag > config file/env > built-in default order.

func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	if v, err := cmd.Flags().GetString(flag); err == nil && v != "" {
		return v
	}
	return fallback
}

func intSetting(cmd *cobra.Command, flag, key string, fallback int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if v, err := cmd.Flags().GetInt(flag); err == nil && v != 0 {
		return v
	}
	return fallback
}

func floatSetting(cmd *cobra.Command, flag, key string, fallback float64) float64 {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetFloat64(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	if v, err := cmd.Flags().GetFloat64(flag); err == nil && v != 0 {
		return v
	}
	return fallback
}

func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	if v, err := cmd.Flags().GetDuration(flag); err == nil && v != 0 {
		return v
	}
	return fallback
}

// contactEmail resolves the OpenAlex polite-pool address: config file or
// env first, then the openalex-email secret.
func contactEmail() string {
	if email := viper.GetString("contact_email"); email != "" {
		return email
	}
	return loadedSecrets["openalex-email"]
}

// fetchConfig builds the OpenAlex client settings for commands that
// register the network flags (extract, resolve, run).
func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "timeout", defaultTimeout),
			UserAgent: defaultUserAgent,
		},
		BaseURL:           viper.GetString("base_url"),
		ContactEmail:      contactEmail(),
		RequestsPerSecond: floatSetting(cmd, "rate", "requests_per_second", defaultRate),
		FromYear:          intSetting(cmd, "from-year", "from_year", defaultFromYear),
		JournalDelay:      durationSetting(cmd, "delay", "journal_delay", defaultDelay),
	}
}

// networkFlags registers the OpenAlex client flags shared by the
// commands that call the API.
func networkFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().Float64("rate", 0, "maximum API requests per second (default 10)")
	cmd.Flags().Duration("delay", 0, "pause between consecutive journals (default 500ms)")
	cmd.Flags().Int("from-year", 0, "minimum publication year (default 2010)")
}

// pipelineOptions builds the stage options shared by every subcommand.
func pipelineOptions(cmd *cobra.Command, cfg types.FetchConfig) extract.Options {
	return extract.Options{
		Input:        stringSetting(cmd, "input", "input", defaultInput),
		Sheet:        stringSetting(cmd, "sheet", "sheet", defaultSheet),
		OutDir:       stringSetting(cmd, "out-dir", "out_dir", defaultOutDir),
		FromYear:     cfg.FromYear,
		JournalDelay: cfg.JournalDelay,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
