// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hal-sync CLI.
// Implements: prd001-fetch, prd002-archive, prd004-reconcile,
//             prd005-report (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hal-sync/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "hal-sync/0.1"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the hal-sync CLI.
var rootCmd = &cobra.Command{
	Use:   "hal-sync",
	Short: "Reconcile a HAL catalog collection with a local publication archive",
	Long: `hal-sync keeps a locally maintained publication archive aligned with the
HAL open archive. It fetches the catalog records for a collection, matches
each one against the local archive records, and reports which publications
are already covered locally and which are missing.

Each stage is a subcommand: fetch downloads a catalog snapshot, and
reconcile runs the matching and writes reports and stubs for missing
publications.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hal-sync.yaml or ~/.config/hal-sync/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hal-sync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hal-sync"))
		}
	}

	viper.SetEnvPrefix("HAL_SYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
