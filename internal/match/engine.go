// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"github.com/pdiddy/hal-sync/pkg/types"
)

// Result pairs the best candidate found for a target with a confidence
// value in [0,1]. Best is nil only when the candidate set was empty, in
// which case Confidence is 0. Confidence 1.0 denotes an identifier match.
type Result struct {
	Best       *types.ArchiveRecord `json:"best,omitempty" yaml:"best,omitempty"`
	Confidence float64              `json:"confidence" yaml:"confidence"`
}

// Match scores every candidate against the target and returns the best one.
//
// Candidates are inspected in input order. A candidate whose normalized HAL
// identifier equals the target's, or whose DOI is string-equal to the
// target's (case-sensitive, no normalization), wins immediately with
// confidence 1.0; later candidates are not inspected even if they would
// also match (R1.2, R1.3). Without an identifier match, the confidence is
// the mean of the computable sub-measures — title, author, and date, with
// author counted twice — and the running best advances only on a strictly
// greater value, so ties keep the earliest candidate (R3.1, R3.2). A
// candidate with no computable sub-measure scores 0 but still becomes the
// best when nothing beats it, so callers can tell "no evidence" (low
// confidence, non-nil Best) from "no candidates" (nil Best).
//
// Match is a pure function of its inputs: no state survives between calls,
// and matching distinct targets from concurrent goroutines is safe.
func Match(target types.Publication, candidates []types.ArchiveRecord) Result {
	var res Result
	targetID := NormalizeID(target.HALID)

	for i := range candidates {
		c := &candidates[i]

		if targetID != "" && NormalizeID(c.HALID) == targetID {
			return Result{Best: c, Confidence: 1.0}
		}
		if target.DOI != "" && c.DOI == target.DOI {
			return Result{Best: c, Confidence: 1.0}
		}

		conf := fuse(target, *c)
		if res.Best == nil || conf > res.Confidence {
			res.Best = c
			res.Confidence = conf
		}
	}
	return res
}

// fuse averages the computable sub-measures for one candidate. The author
// signal is appended twice, weighting it double relative to title and date;
// this mirrors the upstream scoring policy and is deliberately not
// rebalanced (see DESIGN.md § Open questions). Sub-measures with missing
// inputs are excluded from the mean rather than scored zero, so sparse
// records are not penalized for fields they omit (R2.5).
func fuse(target types.Publication, c types.ArchiveRecord) float64 {
	var scores []float64
	if s, ok := titleSimilarity(target.Titles, c.Title); ok {
		scores = append(scores, s)
	}
	if s, ok := authorSimilarity(target.Authors, c.Authors); ok {
		scores = append(scores, s, s)
	}
	if s, ok := dateSimilarity(target.Date, c.Date); ok {
		scores = append(scores, s)
	}

	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
