// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hal-sync/pkg/types"
)

const (
	cacheFile  = "catalog.db"
	dateFormat = "2006-01-02"
)

// Cache is a SQLite snapshot of fetched catalog records, letting reconcile
// runs work offline from the last fetch (R4.1). It stores remote records
// only, never match results.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the snapshot database under dir (R4.2).
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, cacheFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			hal_id TEXT PRIMARY KEY,
			doi TEXT,
			titles TEXT NOT NULL,
			authors TEXT,
			date TEXT,
			abstract TEXT,
			doc_type TEXT,
			uri TEXT,
			query TEXT,
			fetched_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_query ON publications(query)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put upserts a fetch batch under its query string. Records already present
// are replaced, so re-fetching refreshes the snapshot in place (R4.3).
func (c *Cache) Put(query string, pubs []types.Publication) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO publications
		(hal_id, doi, titles, authors, date, abstract, doc_type, uri, query, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for _, p := range pubs {
		titles, err := json.Marshal(p.Titles)
		if err != nil {
			return fmt.Errorf("encoding titles for %s: %w", p.HALID, err)
		}
		authors, err := json.Marshal(p.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", p.HALID, err)
		}

		date := ""
		if !p.Date.IsZero() {
			date = p.Date.Format(dateFormat)
		}

		if _, err := stmt.Exec(p.HALID, p.DOI, string(titles), string(authors),
			date, p.Abstract, p.DocType, p.URI, query, fetchedAt); err != nil {
			return fmt.Errorf("inserting %s: %w", p.HALID, err)
		}
	}

	return tx.Commit()
}

// Load returns cached publications for a query in identifier order. An
// empty query returns the whole snapshot.
func (c *Cache) Load(query string) ([]types.Publication, error) {
	const base = `SELECT hal_id, doi, titles, authors, date, abstract, doc_type, uri FROM publications`

	var rows *sql.Rows
	var err error
	if query == "" {
		rows, err = c.db.Query(base + ` ORDER BY hal_id`)
	} else {
		rows, err = c.db.Query(base+` WHERE query = ? ORDER BY hal_id`, query)
	}
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var pubs []types.Publication
	for rows.Next() {
		var p types.Publication
		var titles, authors, date string
		if err := rows.Scan(&p.HALID, &p.DOI, &titles, &authors, &date,
			&p.Abstract, &p.DocType, &p.URI); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		if err := json.Unmarshal([]byte(titles), &p.Titles); err != nil {
			return nil, fmt.Errorf("decoding titles for %s: %w", p.HALID, err)
		}
		if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors for %s: %w", p.HALID, err)
		}
		p.Date = types.ParseDate(date)
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}
