// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile matches every catalog target against the local archive
// and classifies each as matched or missing.
// Implements: prd004-reconcile (R1-R3);
//
//	docs/ARCHITECTURE § Reconciliation.
package reconcile

import (
	"runtime"
	"sync"

	"github.com/pdiddy/hal-sync/internal/match"
	"github.com/pdiddy/hal-sync/pkg/types"
)

// DefaultThreshold is the confidence cutoff used when the configuration
// does not set one.
const DefaultThreshold = 0.7

// Outcome pairs one catalog target with its match result and the threshold
// classification.
type Outcome struct {
	Target       types.Publication `json:"target" yaml:"target"`
	match.Result `yaml:",inline"`

	// Matched is true when Confidence reached the threshold. Only missing
	// (unmatched) targets proceed to stub generation.
	Matched bool `json:"matched" yaml:"matched"`
}

// Report holds the per-target outcomes of one reconciliation run, in
// target order, plus the threshold that classified them.
type Report struct {
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Outcomes  []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Total returns the number of targets processed.
func (r Report) Total() int {
	return len(r.Outcomes)
}

// Matched counts targets that reached the threshold.
func (r Report) Matched() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Matched {
			n++
		}
	}
	return n
}

// Missing counts targets below the threshold.
func (r Report) Missing() int {
	return r.Total() - r.Matched()
}

// MissingTargets returns the targets below the threshold, in target order.
func (r Report) MissingTargets() []types.Publication {
	var missing []types.Publication
	for _, o := range r.Outcomes {
		if !o.Matched {
			missing = append(missing, o.Target)
		}
	}
	return missing
}

// Run matches each target against the full candidate set and applies the
// confidence threshold (R1.1, R2.2). Targets are independent, so the
// matching operations run on a bounded worker pool; outcomes are written
// into a slice indexed by target position, keeping the report order
// deterministic regardless of scheduling (R3.1, R3.2).
func Run(targets []types.Publication, candidates []types.ArchiveRecord, cfg types.ReconcileConfig) Report {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	outcomes := make([]Outcome, len(targets))

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				res := match.Match(targets[i], candidates)
				outcomes[i] = Outcome{
					Target:  targets[i],
					Result:  res,
					Matched: res.Confidence >= threshold,
				}
			}
		}()
	}
	for i := range targets {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return Report{Threshold: threshold, Outcomes: outcomes}
}
