// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// dateLayouts are the date forms the HAL catalog and archive front matter
// use, from most to least precise. Year-only and year-month dates resolve
// to the first day of the period.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseDate converts a date-like string to a calendar date in UTC. An empty
// or unparseable input returns the zero time, the convention for "absent":
// malformed dates degrade to a missing date similarity signal instead of
// failing the record (prd003-matching R2.4).
func ParseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
