// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hal-sync/internal/match"
	"github.com/pdiddy/hal-sync/pkg/types"
)

const stubDateFormat = "2006-01-02"

// stubFrontMatter is the YAML front matter written into a generated stub.
// It uses the same keys the archive scanner reads, so a generated stub is
// itself a valid candidate record on the next run.
type stubFrontMatter struct {
	HALID   string   `yaml:"halId,omitempty"`
	DOI     string   `yaml:"doi,omitempty"`
	Title   string   `yaml:"title,omitempty"`
	Authors []string `yaml:"authors,omitempty"`
	Date    string   `yaml:"date,omitempty"`
	URI     string   `yaml:"uri,omitempty"`
}

// WriteStubs writes one markdown stub per missing target into dir and
// returns the number written (R3.1). Existing files are never overwritten:
// a stub the curator already edited is skipped with a note on w (R3.3).
// Targets with neither a HAL identifier nor a DOI cannot be named and are
// skipped with a warning.
func WriteStubs(dir string, missing []types.Publication, w io.Writer) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating stubs directory: %w", err)
	}

	written := 0
	for _, p := range missing {
		slug := stubSlug(p)
		if slug == "" {
			fmt.Fprintf(w, "warning: no identifier to name a stub for %q\n", p.Title())
			continue
		}

		path := filepath.Join(dir, slug+".md")
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", path)
			continue
		}

		data, err := renderStub(p)
		if err != nil {
			return written, fmt.Errorf("rendering stub for %s: %w", slug, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing stub %s: %w", path, err)
		}
		fmt.Fprintf(w, "created: %s\n", path)
		written++
	}
	return written, nil
}

// stubSlug returns a filesystem-safe filename stem for the publication:
// the normalized HAL identifier when present, otherwise the DOI with
// path separators flattened.
func stubSlug(p types.Publication) string {
	if id := match.NormalizeID(p.HALID); id != "" {
		return id
	}
	if p.DOI != "" {
		return strings.NewReplacer("/", "-", ":", "-").Replace(p.DOI)
	}
	return ""
}

// renderStub builds the stub file: front matter followed by a heading and
// the abstract, when the catalog supplied one.
func renderStub(p types.Publication) ([]byte, error) {
	fm := stubFrontMatter{
		HALID:   match.NormalizeID(p.HALID),
		DOI:     p.DOI,
		Title:   p.Title(),
		Authors: p.Authors,
		URI:     p.URI,
	}
	if !p.Date.IsZero() {
		fm.Date = p.Date.Format(stubDateFormat)
	}

	meta, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	if title := p.Title(); title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	if p.Abstract != "" {
		b.WriteString(p.Abstract)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
