// Package archive persists parsed reports in SQLite so the service
// survives restarts without reparsing uploads.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hkanaan/factsheet/internal/library"
	"github.com/hkanaan/factsheet/internal/report"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			filename TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			section_count INTEGER NOT NULL,
			entry_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			doc_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reports_hash ON reports(content_hash);
	`
	_, err := db.Exec(schema)
	return err
}

// Save stores a parsed report and its metadata.
func (d *DB) Save(meta library.Meta, rep *report.Report) error {
	doc, err := report.MarshalReportJSON(rep)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO reports
			(id, title, filename, content_hash, section_count, entry_count, created_at, doc_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Title, meta.Filename, meta.ContentHash,
		meta.SectionCount, meta.EntryCount, meta.CreatedAt.Unix(), string(doc),
	)
	if err != nil {
		return fmt.Errorf("saving report %s: %w", meta.ID, err)
	}
	return nil
}

// Delete removes a stored report. Missing rows are not an error.
func (d *DB) Delete(id string) error {
	if _, err := d.db.Exec(`DELETE FROM reports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	return nil
}

// Stored pairs a report with its persisted metadata.
type Stored struct {
	Meta   library.Meta
	Report *report.Report
}

// LoadAll reads every stored report, oldest first.
func (d *DB) LoadAll() ([]Stored, error) {
	rows, err := d.db.Query(`
		SELECT id, title, filename, content_hash, section_count, entry_count, created_at, doc_json
		FROM reports ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		var meta library.Meta
		var createdAt int64
		var doc string
		if err := rows.Scan(&meta.ID, &meta.Title, &meta.Filename, &meta.ContentHash,
			&meta.SectionCount, &meta.EntryCount, &createdAt, &doc); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		meta.CreatedAt = time.Unix(createdAt, 0).UTC()

		rep, err := report.UnmarshalReportJSON([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("decoding report %s: %w", meta.ID, err)
		}
		out = append(out, Stored{Meta: meta, Report: rep})
	}
	return out, rows.Err()
}
