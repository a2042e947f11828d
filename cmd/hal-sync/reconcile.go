// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hal-sync/internal/archive"
	"github.com/pdiddy/hal-sync/internal/hal"
	"github.com/pdiddy/hal-sync/internal/reconcile"
	"github.com/pdiddy/hal-sync/internal/report"
	"github.com/pdiddy/hal-sync/pkg/types"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match catalog records against the local archive",
	Long: `Reconcile fetches the catalog records for the configured query (or loads
the last snapshot with --cached), scans the local archive for candidate
records, and matches every catalog record against them. Records whose best
match reaches the confidence threshold are reported as matched; the rest
are missing and can be materialized as stubs with --stubs-dir.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().String("query", "", "HAL search query (e.g. \"collCode_s:LAB-X\")")
	reconcileCmd.Flags().Int("rows", 0, "maximum number of records to fetch (default 500)")
	reconcileCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	reconcileCmd.Flags().Bool("cached", false, "use the last fetched snapshot instead of the network")
	reconcileCmd.Flags().String("cache-dir", "", "directory for the snapshot database (default \"cache\")")
	reconcileCmd.Flags().String("archive-dir", "", "root of the local publication archive (default \"archive\")")
	reconcileCmd.Flags().Float64("threshold", 0, "confidence threshold in [0,1] (default 0.7)")
	reconcileCmd.Flags().Int("workers", 0, "concurrent matching operations (default: number of CPUs)")
	reconcileCmd.Flags().Bool("json", false, "output the report as JSON")
	reconcileCmd.Flags().String("report", "", "write a YAML report file to this path")
	reconcileCmd.Flags().String("stubs-dir", "", "write markdown stubs for missing publications here")

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	fetchCfg := fetchConfig(cmd)

	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	if archiveDir == "" {
		archiveDir = viper.GetString("archive.dir")
	}
	if archiveDir == "" {
		archiveDir = "archive"
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if threshold == 0 {
		threshold = viper.GetFloat64("reconcile.threshold")
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %f outside [0,1]", threshold)
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = viper.GetInt("reconcile.workers")
	}

	targets, err := loadTargets(cmd, fetchCfg)
	if err != nil {
		return err
	}

	candidates, err := archive.Scan(archiveDir, os.Stderr)
	if err != nil {
		return err
	}

	rep := reconcile.Run(targets, candidates, types.ReconcileConfig{
		Threshold: threshold,
		Workers:   workers,
	})

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := report.FormatJSON(rep, os.Stdout); err != nil {
			return err
		}
	} else {
		report.FormatTable(rep, os.Stdout)
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := report.WriteReportFile(reportPath, fetchCfg.Query, rep); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
	}

	if stubsDir, _ := cmd.Flags().GetString("stubs-dir"); stubsDir != "" {
		written, err := report.WriteStubs(stubsDir, rep.MissingTargets(), os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d stub(s) written to %s\n", written, stubsDir)
	}

	return nil
}

// loadTargets returns catalog records from the snapshot database when
// --cached is set, and from the HAL API otherwise. Live fetches refresh
// the snapshot as a side effect, so --cached always has something to read.
func loadTargets(cmd *cobra.Command, cfg types.FetchConfig) ([]types.Publication, error) {
	cached, _ := cmd.Flags().GetBool("cached")

	cache, err := hal.OpenCache(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	if cached {
		targets, err := cache.Load(cfg.Query)
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("snapshot is empty for query %q: run fetch first", cfg.Query)
		}
		return targets, nil
	}

	if cfg.Query == "" {
		return nil, fmt.Errorf("no query configured: pass --query or set fetch.query in the config file")
	}

	client := &hal.Client{
		HTTP:     &http.Client{Timeout: cfg.Timeout},
		APIToken: cfg.APIToken,
	}
	targets, err := client.Fetch(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(cfg.Query, targets); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not refresh snapshot: %v\n", err)
	}
	return targets, nil
}
