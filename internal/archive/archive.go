// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive reads candidate records from the local publication
// archive: markdown files with YAML front matter, plus bare YAML records.
// Implements: prd002-archive (R1-R3);
//
//	docs/ARCHITECTURE § Local Archive.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hal-sync/pkg/types"
)

// frontMatterDelim separates YAML front matter from the markdown body.
var frontMatterDelim = []byte("---")

// record is the on-disk YAML shape of an archive entry. Date stays a string
// here; parsing happens after unmarshal so malformed dates degrade to
// absent instead of failing the file (R2.3).
type record struct {
	HALID   string   `yaml:"halId"`
	DOI     string   `yaml:"doi"`
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	Date    string   `yaml:"date"`
}

// Scan walks dir and returns one ArchiveRecord per parseable .md or .yaml
// file, in lexical path order. Lexical order is load-bearing: the matching
// engine breaks ties by first-seen candidate, so scan order must be stable
// across runs (R1.2). Unreadable or malformed files produce a warning on w
// and are skipped; only the directory walk itself can fail the scan.
func Scan(dir string, w io.Writer) ([]types.ArchiveRecord, error) {
	var records []types.ArchiveRecord

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".yaml" && ext != ".yml" {
			return nil
		}

		rec, parseErr := readRecord(path, ext)
		if parseErr != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", path, parseErr)
			return nil
		}
		rec.Path = path
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning archive %s: %w", dir, err)
	}

	return records, nil
}

// readRecord loads one archive file into a candidate record.
func readRecord(path, ext string) (types.ArchiveRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ArchiveRecord{}, err
	}

	if ext == ".md" {
		data, err = extractFrontMatter(data)
		if err != nil {
			return types.ArchiveRecord{}, err
		}
	}

	var r record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return types.ArchiveRecord{}, fmt.Errorf("parsing YAML: %w", err)
	}

	return types.ArchiveRecord{
		HALID:   strings.TrimSpace(r.HALID),
		DOI:     strings.TrimSpace(r.DOI),
		Title:   strings.TrimSpace(r.Title),
		Authors: r.Authors,
		Date:    types.ParseDate(r.Date),
	}, nil
}

// extractFrontMatter returns the YAML block between the leading "---" line
// and its closing delimiter.
func extractFrontMatter(data []byte) ([]byte, error) {
	rest, found := bytes.CutPrefix(data, frontMatterDelim)
	if !found || (len(rest) > 0 && rest[0] != '\n' && rest[0] != '\r') {
		return nil, fmt.Errorf("no front matter")
	}

	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return nil, fmt.Errorf("unterminated front matter")
	}
	return rest[:end], nil
}
