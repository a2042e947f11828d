// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the hal-sync pipeline.
// Implements: prd001-fetch (Publication, R3.1-R3.3);
//
//	prd002-archive (ArchiveRecord, R2.1-R2.4);
//	prd004-reconcile (PipelineConfig).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

import "time"

// Publication is a target record fetched from the HAL catalog. Fields that
// the catalog did not supply are left at their zero value: an empty string,
// an empty slice, or a zero time.Time all mean "absent". The matching
// engine distinguishes absent from present-but-different, so providers must
// not substitute placeholder values.
type Publication struct {
	// HALID is the HAL document identifier, possibly carrying a trailing
	// version suffix (e.g. "hal-04056123v2").
	HALID string `json:"hal_id" yaml:"hal_id"`

	// DOI is the bare DOI (no resolver prefix), if the catalog has one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Titles holds the title in each language the deposit declares, in
	// catalog order. At least one entry is present for well-formed records.
	Titles []string `json:"titles" yaml:"titles"`

	// Authors lists full author names in deposit order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Date is the produced date of the publication. Zero means unknown.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Abstract is the publication abstract, when the catalog exposes one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DocType is the HAL document type code (e.g. "ART", "COMM").
	DocType string `json:"doc_type,omitempty" yaml:"doc_type,omitempty"`

	// URI is the public landing page on the HAL portal.
	URI string `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// Title returns the first title variant, or "" when the record has none.
func (p Publication) Title() string {
	if len(p.Titles) == 0 {
		return ""
	}
	return p.Titles[0]
}

// ArchiveRecord is a candidate record read from the local archive. The same
// zero-value-means-absent convention as Publication applies.
type ArchiveRecord struct {
	// HALID is the HAL identifier without a version suffix, when known.
	HALID string `json:"hal_id,omitempty" yaml:"halId,omitempty"`

	// DOI is the bare DOI, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Title is the single local title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Authors lists full author names in local order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Date is the local publication date. Zero means unknown.
	Date time.Time `json:"date,omitempty" yaml:"-"`

	// Path is the archive file the record was read from. Set by the
	// archive scanner, not part of the record's identity.
	Path string `json:"path,omitempty" yaml:"-"`
}
