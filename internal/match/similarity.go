// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// dateDecayDays controls the date similarity decay exp(-|days|/150):
// ≈1.0 for the same day, ≈0.8 at a 30-day gap, ≈0.08 at a year. Same-month
// skew between deposit and publication dates stays close to 1.0, while
// multi-month discrepancies decay sharply. A year-off clerical typo on the
// same month and day scores near zero; known limitation, kept as-is.
const dateDecayDays = 150.0

// StringSimilarity returns 1 - d/max(len(a), len(b)), where d is the
// Levenshtein edit distance and lengths count runes. Equal strings yield
// exactly 1.0; the result is symmetric and always in [0,1]. The distance
// computation is the library's O(n*m) dynamic program, adequate for
// title- and abstract-length inputs.
func StringSimilarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}

// titleSimilarity compares the candidate title against every language
// variant of the target title and keeps the best score (R2.1). The ok
// return is false when either side has no title.
func titleSimilarity(variants []string, title string) (float64, bool) {
	if title == "" {
		return 0, false
	}
	best := 0.0
	ok := false
	for _, v := range variants {
		if v == "" {
			continue
		}
		ok = true
		if s := StringSimilarity(v, title); s > best {
			best = s
		}
	}
	return best, ok
}

// authorSimilarity joins each author list into a single comma-and-space
// separated string, preserving list order, and compares the joined forms
// (R2.2). Comparing fused strings absorbs the capitalization, accent, and
// initials noise that per-element pairing trips over.
func authorSimilarity(target, candidate []string) (float64, bool) {
	if len(target) == 0 || len(candidate) == 0 {
		return 0, false
	}
	return StringSimilarity(strings.Join(target, ", "), strings.Join(candidate, ", ")), true
}

// dateSimilarity decays exponentially with the gap in days between the two
// dates (R2.3). Not computable when either date is absent.
func dateSimilarity(a, b time.Time) (float64, bool) {
	if a.IsZero() || b.IsZero() {
		return 0, false
	}
	days := math.Abs(a.Sub(b).Hours() / 24)
	return math.Exp(-days / dateDecayDays), true
}
