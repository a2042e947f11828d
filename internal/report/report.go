// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders reconciliation results: a summary table or JSON
// for the terminal, a YAML report file, and markdown stubs for missing
// publications.
// Implements: prd005-report (R1-R3);
//
//	docs/ARCHITECTURE § Reporting.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/hal-sync/internal/reconcile"
)

// FormatTable writes outcomes as a human-readable table to w (R1.2).
func FormatTable(rep reconcile.Report, w io.Writer) {
	if rep.Total() == 0 {
		fmt.Fprintln(w, "No catalog records to reconcile.")
		return
	}

	fmt.Fprintf(w, "%-18s  %-50s  %-6s  %-8s  %s\n",
		"HAL ID", "Title", "Conf", "Status", "Local Record")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, o := range rep.Outcomes {
		title := o.Target.Title()
		if len(title) > 50 {
			title = title[:47] + "..."
		}

		status := "missing"
		if o.Matched {
			status = "matched"
		}

		local := ""
		if o.Best != nil {
			local = o.Best.Path
		}

		fmt.Fprintf(w, "%-18s  %-50s  %-6.2f  %-8s  %s\n",
			o.Target.HALID, title, o.Confidence, status, local)
	}

	fmt.Fprintf(w, "\n%d records: %d matched, %d missing (threshold %.2f)\n",
		rep.Total(), rep.Matched(), rep.Missing(), rep.Threshold)
}

// FormatJSON writes the full report as indented JSON to w (R1.3).
func FormatJSON(rep reconcile.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
