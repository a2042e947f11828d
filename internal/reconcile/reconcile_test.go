// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/pdiddy/hal-sync/pkg/types"
)

func pub(id, title string) types.Publication {
	return types.Publication{HALID: id, Titles: []string{title}}
}

func TestRunClassifiesByThreshold(t *testing.T) {
	targets := []types.Publication{
		pub("hal-000111v2", "Fast Graphs"),
		pub("hal-000999v1", "Entirely Absent Work"),
		{
			HALID:   "hal-000555v1",
			Titles:  []string{"Deep Learning for X"},
			Authors: []string{"J Smith"},
			Date:    time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	candidates := []types.ArchiveRecord{
		{HALID: "hal-000111", Title: "Fast Graphs", Path: "a.md"},
		{
			Title:   "Deep Learning for X",
			Authors: []string{"J Smith"},
			Date:    time.Date(2020, time.June, 20, 0, 0, 0, 0, time.UTC),
			Path:    "b.md",
		},
	}

	rep := Run(targets, candidates, types.ReconcileConfig{Threshold: 0.7, Workers: 1})

	if rep.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", rep.Total())
	}
	if rep.Matched() != 2 {
		t.Errorf("Matched() = %d, want 2", rep.Matched())
	}
	if rep.Missing() != 1 {
		t.Errorf("Missing() = %d, want 1", rep.Missing())
	}

	// Outcomes stay in target order.
	if rep.Outcomes[0].Target.HALID != "hal-000111v2" || !rep.Outcomes[0].Matched {
		t.Errorf("outcome 0 = %+v, want exact match", rep.Outcomes[0])
	}
	if rep.Outcomes[0].Confidence != 1.0 {
		t.Errorf("outcome 0 confidence = %f, want 1.0", rep.Outcomes[0].Confidence)
	}
	if rep.Outcomes[1].Matched {
		t.Errorf("outcome 1 = %+v, want missing", rep.Outcomes[1])
	}

	missing := rep.MissingTargets()
	if len(missing) != 1 || missing[0].HALID != "hal-000999v1" {
		t.Errorf("MissingTargets() = %+v", missing)
	}
}

func TestRunThresholdIsInclusive(t *testing.T) {
	// An exact title with nothing else computable fuses to exactly 1.0;
	// a threshold of 1.0 must still accept it.
	targets := []types.Publication{pub("hal-1", "Fast Graphs")}
	candidates := []types.ArchiveRecord{{Title: "Fast Graphs"}}

	rep := Run(targets, candidates, types.ReconcileConfig{Threshold: 1.0, Workers: 1})
	if !rep.Outcomes[0].Matched {
		t.Errorf("confidence %f at threshold 1.0 should match", rep.Outcomes[0].Confidence)
	}
}

func TestRunDefaultThreshold(t *testing.T) {
	rep := Run([]types.Publication{pub("hal-1", "T")}, nil, types.ReconcileConfig{})
	if rep.Threshold != DefaultThreshold {
		t.Errorf("Threshold = %f, want %f", rep.Threshold, DefaultThreshold)
	}
}

func TestRunEmptyInputs(t *testing.T) {
	rep := Run(nil, nil, types.ReconcileConfig{Threshold: 0.7})
	if rep.Total() != 0 {
		t.Errorf("Total() = %d, want 0", rep.Total())
	}

	// Targets with no candidates: every target is missing with nil best.
	rep = Run([]types.Publication{pub("hal-1", "T")}, nil, types.ReconcileConfig{Threshold: 0.7})
	if rep.Matched() != 0 {
		t.Errorf("Matched() = %d, want 0", rep.Matched())
	}
	if rep.Outcomes[0].Best != nil || rep.Outcomes[0].Confidence != 0 {
		t.Errorf("outcome = %+v, want nil best and confidence 0", rep.Outcomes[0])
	}
}

func TestRunParallelMatchesSerial(t *testing.T) {
	var targets []types.Publication
	var candidates []types.ArchiveRecord
	for i := 0; i < 50; i++ {
		targets = append(targets, types.Publication{
			HALID:  fmt.Sprintf("hal-%06dv1", i),
			Titles: []string{fmt.Sprintf("Paper Number %d on Graphs", i)},
		})
		candidates = append(candidates, types.ArchiveRecord{
			Title: fmt.Sprintf("Paper Number %d on Graphs", (i*7)%50),
			Path:  fmt.Sprintf("%06d.md", i),
		})
	}

	serial := Run(targets, candidates, types.ReconcileConfig{Threshold: 0.7, Workers: 1})
	parallel := Run(targets, candidates, types.ReconcileConfig{Threshold: 0.7, Workers: 8})

	for i := range serial.Outcomes {
		s, p := serial.Outcomes[i], parallel.Outcomes[i]
		if s.Confidence != p.Confidence || s.Matched != p.Matched {
			t.Errorf("outcome %d diverged: serial %+v, parallel %+v", i, s, p)
		}
		if (s.Best == nil) != (p.Best == nil) {
			t.Errorf("outcome %d best presence diverged", i)
		}
		if s.Best != nil && p.Best != nil && s.Best.Path != p.Best.Path {
			t.Errorf("outcome %d best diverged: %s vs %s", i, s.Best.Path, p.Best.Path)
		}
	}
}
