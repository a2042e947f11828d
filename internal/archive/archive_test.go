// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const fullRecord = `---
halId: hal-000111
doi: 10.1000/abc
title: Fast Graphs
authors:
  - A Dupont
  - B Martin
date: 2021-03-01
---

# Fast Graphs

Local notes about the paper.
`

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-notes.md", fullRecord)
	writeFile(t, dir, "a-record.yaml", "halId: hal-000222\ntitle: Deep Learning for X\ndate: 2020-06\n")
	writeFile(t, dir, "sub/c-sparse.md", "---\ntitle: Only a Title\n---\nbody\n")

	var warnings bytes.Buffer
	records, err := Scan(dir, &warnings)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3: %+v", len(records), records)
	}

	// Lexical path order: a-record.yaml, b-notes.md, sub/c-sparse.md.
	if records[0].HALID != "hal-000222" || records[1].HALID != "hal-000111" {
		t.Errorf("records out of lexical order: %q, %q", records[0].HALID, records[1].HALID)
	}

	full := records[1]
	if full.DOI != "10.1000/abc" {
		t.Errorf("DOI = %q", full.DOI)
	}
	if full.Title != "Fast Graphs" {
		t.Errorf("Title = %q", full.Title)
	}
	if len(full.Authors) != 2 || full.Authors[0] != "A Dupont" {
		t.Errorf("Authors = %v", full.Authors)
	}
	if want := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC); !full.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", full.Date, want)
	}
	if full.Path == "" {
		t.Error("Path not set")
	}

	// Year-month date resolves to the first of the month.
	if want := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC); !records[0].Date.Equal(want) {
		t.Errorf("yaml record Date = %v, want %v", records[0].Date, want)
	}

	sparse := records[2]
	if sparse.HALID != "" || sparse.DOI != "" || len(sparse.Authors) != 0 || !sparse.Date.IsZero() {
		t.Errorf("sparse record should leave absent fields at zero: %+v", sparse)
	}
}

func TestScanSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.md", fullRecord)
	writeFile(t, dir, "no-front-matter.md", "# Just a heading\n")
	writeFile(t, dir, "unterminated.md", "---\ntitle: Oops\n")
	writeFile(t, dir, "broken.yaml", "title: [unclosed\n")
	writeFile(t, dir, "ignored.txt", "not a record")

	var warnings bytes.Buffer
	records, err := Scan(dir, &warnings)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].HALID != "hal-000111" {
		t.Errorf("HALID = %q", records[0].HALID)
	}

	out := warnings.String()
	for _, name := range []string{"no-front-matter.md", "unterminated.md", "broken.yaml"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected a warning mentioning %s, got:\n%s", name, out)
		}
	}
	if strings.Contains(out, "ignored.txt") {
		t.Errorf("non-record extensions should be skipped silently, got:\n%s", out)
	}
}

func TestScanMalformedDateIsAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad-date.md", "---\ntitle: Fast Graphs\ndate: sometime in spring\n---\n")

	var warnings bytes.Buffer
	records, err := Scan(dir, &warnings)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if !records[0].Date.IsZero() {
		t.Errorf("Date = %v, want zero for unparseable input", records[0].Date)
	}
	if warnings.Len() != 0 {
		t.Errorf("malformed date is not a warning, got: %s", warnings.String())
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	records, err := Scan(t.TempDir(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
