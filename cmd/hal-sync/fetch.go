// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hal-sync/internal/hal"
	"github.com/pdiddy/hal-sync/pkg/types"
)

const defaultTimeout = 30 * time.Second

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a catalog snapshot from the HAL API",
	Long: `Fetch queries the HAL search API for the configured collection and
stores the returned records in the local snapshot database. Reconcile runs
with --cached read from the snapshot instead of the network.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("query", "", "HAL search query (e.g. \"collCode_s:LAB-X\")")
	fetchCmd.Flags().Int("rows", 0, "maximum number of records to fetch (default 500)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().String("cache-dir", "", "directory for the snapshot database (default \"cache\")")

	rootCmd.AddCommand(fetchCmd)
}

// fetchConfig merges flags, the config file, and defaults, in that order.
func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = viper.GetString("fetch.query")
	}

	rows, _ := cmd.Flags().GetInt("rows")
	if rows == 0 {
		rows = viper.GetInt("fetch.rows")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("fetch.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = viper.GetString("fetch.cache_dir")
	}
	if cacheDir == "" {
		cacheDir = "cache"
	}

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Query:    query,
		Rows:     rows,
		APIToken: secretDefault("hal-api-token", viper.GetString("fetch.api_token")),
		CacheDir: cacheDir,
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := fetchConfig(cmd)
	if cfg.Query == "" {
		return fmt.Errorf("no query configured: pass --query or set fetch.query in the config file")
	}

	client := &hal.Client{
		HTTP:     &http.Client{Timeout: cfg.Timeout},
		APIToken: cfg.APIToken,
	}

	pubs, err := client.Fetch(context.Background(), cfg)
	if err != nil {
		return err
	}

	cache, err := hal.OpenCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := cache.Put(cfg.Query, pubs); err != nil {
		return fmt.Errorf("caching snapshot: %w", err)
	}

	for _, p := range pubs {
		year := ""
		if !p.Date.IsZero() {
			year = fmt.Sprintf("%d", p.Date.Year())
		}
		fmt.Fprintf(os.Stdout, "%-18s  %-4s  %s\n", p.HALID, year, p.Title())
	}
	fmt.Fprintf(os.Stdout, "\nFetched %d records for %q into %s\n", len(pubs), cfg.Query, cfg.CacheDir)
	return nil
}
