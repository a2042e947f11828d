// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hal fetches publication records from the HAL open-archive search
// API and maintains a local catalog snapshot.
// Implements: prd001-fetch (R1-R5);
//
//	docs/ARCHITECTURE § Catalog Fetch.
package hal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/hal-sync/internal/httputil"
	"github.com/pdiddy/hal-sync/pkg/types"
)

// halSearchBase is the HAL search endpoint. Declared as a var so tests can
// substitute an httptest server.
var halSearchBase = "https://api.archives-ouvertes.fr/search/"

const (
	defaultRows = 500
	maxRows     = 10000
)

// requestFields lists the Solr fields requested from the catalog.
var requestFields = []string{
	"halId_s",
	"doiId_s",
	"title_s",
	"authFullName_s",
	"producedDate_s",
	"abstract_s",
	"docType_s",
	"uri_s",
}

// Client queries the HAL search API (R2.1).
type Client struct {
	HTTP *http.Client

	// APIToken, when set, is sent as a bearer token. Public portals do not
	// require one; restricted collections do.
	APIToken string
}

// halResponse mirrors the Solr response envelope.
type halResponse struct {
	Response struct {
		NumFound int      `json:"numFound"`
		Docs     []halDoc `json:"docs"`
	} `json:"response"`
}

// halDoc is one catalog record as the API returns it. Multivalued Solr
// fields arrive as JSON arrays.
type halDoc struct {
	HALID        string   `json:"halId_s"`
	DOI          string   `json:"doiId_s"`
	Titles       []string `json:"title_s"`
	Authors      []string `json:"authFullName_s"`
	ProducedDate string   `json:"producedDate_s"`
	Abstracts    []string `json:"abstract_s"`
	DocType      string   `json:"docType_s"`
	URI          string   `json:"uri_s"`
}

// Fetch runs one catalog query and returns the matching publications in
// catalog order. One request is issued with the configured row cap; paging
// through larger result sets is out of scope.
func (c *Client) Fetch(ctx context.Context, cfg types.FetchConfig) ([]types.Publication, error) {
	query := strings.TrimSpace(cfg.Query)
	if query == "" {
		query = "*:*"
	}

	rows := cfg.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	if rows > maxRows {
		rows = maxRows
	}

	params := url.Values{
		"q":    {query},
		"wt":   {"json"},
		"fl":   {strings.Join(requestFields, ",")},
		"rows": {fmt.Sprintf("%d", rows)},
		"sort": {"docid asc"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, halSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if c.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("HAL API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HAL API returned HTTP %d", resp.StatusCode)
	}

	var hr halResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, fmt.Errorf("parsing HAL response: %w", err)
	}

	pubs := make([]types.Publication, 0, len(hr.Response.Docs))
	for _, doc := range hr.Response.Docs {
		pubs = append(pubs, docToPublication(doc))
	}
	return pubs, nil
}

// docToPublication maps a catalog document to the pipeline record type.
// Absent fields stay at their zero value; an unparseable produced date
// degrades to a zero time rather than an error (R3.3).
func docToPublication(doc halDoc) types.Publication {
	p := types.Publication{
		HALID:   doc.HALID,
		Titles:  doc.Titles,
		Authors: doc.Authors,
		Date:    types.ParseDate(doc.ProducedDate),
		DocType: doc.DocType,
		URI:     doc.URI,
	}

	// HAL stores bare DOIs, but be tolerant of resolver-prefixed values.
	if doc.DOI != "" {
		p.DOI = strings.TrimPrefix(doc.DOI, "https://doi.org/")
	}

	if len(doc.Abstracts) > 0 {
		p.Abstract = doc.Abstracts[0]
	}
	return p
}
