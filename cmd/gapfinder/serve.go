// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gapfinder/internal/analyze"
	"github.com/pdiddy/gapfinder/internal/history"
	"github.com/pdiddy/gapfinder/internal/server"
	"github.com/pdiddy/gapfinder/internal/source"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve starts the gapfinder HTTP API: POST /api/research aggregates
platform results for a niche, POST /api/analyze relays them to the AI
analysis service, GET /api/sources reports platform status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		logger := newLogger()

		var store *history.Store
		if cfg.History.Path != "" {
			var err error
			store, err = history.NewStore(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("opening history store: %w", err)
			}
			defer store.Close()
		}

		srv := server.New(cfg, source.Registry(cfg.Sources), analyze.NewRelay(cfg.Analysis), store, logger)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
