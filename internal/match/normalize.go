// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores local archive records against HAL catalog entries.
// Implements: prd003-matching (R1-R4);
//
//	docs/ARCHITECTURE § Matching.
package match

import (
	"regexp"
	"strings"
)

// versionSuffix matches a trailing HAL version marker: the letter 'v'
// followed by one or more digits at the end of the identifier
// (e.g. "hal-04056123v2").
var versionSuffix = regexp.MustCompile(`v\d+$`)

// NormalizeID strips the trailing version suffix from a HAL identifier:
// "hal-04056123v2" becomes "hal-04056123". Empty input yields empty output.
// Applied symmetrically to both sides before equality comparison (R1.1).
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return versionSuffix.ReplaceAllString(id, "")
}
