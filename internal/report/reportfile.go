// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hal-sync/internal/reconcile"
)

// ReportFile is the on-disk representation of one reconciliation run. A
// saved report records the query, the threshold that classified the
// outcomes, and the outcomes themselves, so a run can be reviewed without
// re-fetching the catalog.
// Implements: prd005-report R2.1-R2.3.
type ReportFile struct {
	Query    string              `yaml:"query"`
	Summary  ReportSummary       `yaml:"summary"`
	Outcomes []reconcile.Outcome `yaml:"outcomes"`
}

// ReportSummary stores run statistics and a timestamp.
type ReportSummary struct {
	Total     int       `yaml:"total"`
	Matched   int       `yaml:"matched"`
	Missing   int       `yaml:"missing"`
	Threshold float64   `yaml:"threshold"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteReportFile saves the reconciliation report to a YAML file.
func WriteReportFile(path, query string, rep reconcile.Report) error {
	rf := ReportFile{
		Query: query,
		Summary: ReportSummary{
			Total:     rep.Total(),
			Matched:   rep.Matched(),
			Missing:   rep.Missing(),
			Threshold: rep.Threshold,
			Timestamp: time.Now().UTC(),
		},
		Outcomes: rep.Outcomes,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
