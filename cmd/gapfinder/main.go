// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gapfinder CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gapfinder/internal/secrets"
	"github.com/pdiddy/gapfinder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the gapfinder CLI.
var rootCmd = &cobra.Command{
	Use:   "gapfinder",
	Short: "Market niche research across content platforms",
	Long: `gapfinder aggregates search results about a market niche from several
content platforms (GitHub, Hacker News, Reddit, Dev.to, Stack Overflow,
Product Hunt), merges and ranks them, and can forward the aggregate to an
external AI analysis service to surface market gaps.

Run "gapfinder serve" for the HTTP API or "gapfinder research" for a
one-shot query from the terminal.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gapfinder.yaml or ~/.config/gapfinder/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gapfinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gapfinder"))
		}
	}

	viper.SetEnvPrefix("GAPFINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration: defaults, then config
// file / environment via viper, then .secrets/ files for any credential
// still unset.
func loadConfig() types.Config {
	cfg := types.Defaults()

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetString("server.allowed_origin"); v != "" {
		cfg.Server.AllowedOrigin = v
	}
	if v := viper.GetInt("sources.per_source_limit"); v > 0 {
		cfg.Sources.PerSourceLimit = v
	}
	if v := viper.GetInt("sources.max_results"); v > 0 {
		cfg.Sources.MaxResults = v
	}
	if v := viper.GetDuration("sources.timeout"); v > 0 {
		cfg.Sources.Timeout = v
	}
	if v := viper.GetString("sources.github_token"); v != "" {
		cfg.Sources.GitHubToken = v
	}
	if v := viper.GetString("sources.producthunt_api_key"); v != "" {
		cfg.Sources.ProductHuntAPIKey = v
	}
	if v := viper.GetStringSlice("sources.reddit_subreddits"); len(v) > 0 {
		cfg.Sources.RedditSubreddits = v
	}
	if v := viper.GetString("analysis.webhook_url"); v != "" {
		cfg.Analysis.WebhookURL = v
	}
	if v := viper.GetDuration("analysis.timeout"); v > 0 {
		cfg.Analysis.Timeout = v
	}
	if v := viper.GetString("history.path"); v != "" {
		cfg.History.Path = v
	}

	if cfg.Sources.GitHubToken == "" {
		cfg.Sources.GitHubToken = loadedSecrets["github-token"]
	}
	if cfg.Sources.ProductHuntAPIKey == "" {
		cfg.Sources.ProductHuntAPIKey = loadedSecrets["producthunt-api-key"]
	}
	if cfg.Analysis.WebhookURL == "" {
		cfg.Analysis.WebhookURL = loadedSecrets["analysis-webhook-url"]
	}

	return cfg
}

// newLogger builds the process logger. Handlers write JSON to stderr so
// stdout stays clean for command output.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// timestamp formats t the way the HTTP API does.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
