// Package catalog keeps a small SQLite ledger of performed conversions so
// batch runs can skip inputs that were already converted.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Conversion is one recorded source-to-document conversion.
type Conversion struct {
	ID          string
	SourcePath  string
	SourceMod   time.Time
	Filetype    string
	Datatype    string
	OutputPath  string
	Datasets    int
	ConvertedAt time.Time
}

// Catalog is the conversion ledger. Safe for concurrent use; the underlying
// *sql.DB serializes access.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL UNIQUE,
			source_mod INTEGER NOT NULL,
			filetype TEXT NOT NULL,
			datatype TEXT NOT NULL,
			output_path TEXT NOT NULL,
			datasets INTEGER NOT NULL,
			converted_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Record stores one conversion, replacing any previous entry for the same
// source path. A missing ID or timestamp is filled in.
func (c *Catalog) Record(ctx context.Context, conv Conversion) (Conversion, error) {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.ConvertedAt.IsZero() {
		conv.ConvertedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO conversions (id, source_path, source_mod, filetype, datatype, output_path, datasets, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			id = excluded.id,
			source_mod = excluded.source_mod,
			filetype = excluded.filetype,
			datatype = excluded.datatype,
			output_path = excluded.output_path,
			datasets = excluded.datasets,
			converted_at = excluded.converted_at
	`, conv.ID, conv.SourcePath, conv.SourceMod.UnixNano(), conv.Filetype, conv.Datatype,
		conv.OutputPath, conv.Datasets, conv.ConvertedAt.UnixNano())
	if err != nil {
		return Conversion{}, fmt.Errorf("failed to record conversion: %w", err)
	}
	return conv, nil
}

// Lookup returns the recorded conversion for a source path, if any.
func (c *Catalog) Lookup(ctx context.Context, sourcePath string) (Conversion, bool, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, source_path, source_mod, filetype, datatype, output_path, datasets, converted_at
		FROM conversions WHERE source_path = ?
	`, sourcePath)

	conv, err := scanConversion(row.Scan)
	if err == sql.ErrNoRows {
		return Conversion{}, false, nil
	}
	if err != nil {
		return Conversion{}, false, fmt.Errorf("failed to look up conversion: %w", err)
	}
	return conv, true, nil
}

// LookupByID returns the recorded conversion with the given id, if any.
func (c *Catalog) LookupByID(ctx context.Context, id string) (Conversion, bool, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, source_path, source_mod, filetype, datatype, output_path, datasets, converted_at
		FROM conversions WHERE id = ?
	`, id)

	conv, err := scanConversion(row.Scan)
	if err == sql.ErrNoRows {
		return Conversion{}, false, nil
	}
	if err != nil {
		return Conversion{}, false, fmt.Errorf("failed to look up conversion: %w", err)
	}
	return conv, true, nil
}

// IsCurrent reports whether sourcePath was already converted and its
// recorded modification time is not older than modTime.
func (c *Catalog) IsCurrent(ctx context.Context, sourcePath string, modTime time.Time) (bool, error) {
	conv, ok, err := c.Lookup(ctx, sourcePath)
	if err != nil || !ok {
		return false, err
	}
	return !conv.SourceMod.Before(modTime), nil
}

// List returns all recorded conversions, most recent first.
func (c *Catalog) List(ctx context.Context) ([]Conversion, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, source_path, source_mod, filetype, datatype, output_path, datasets, converted_at
		FROM conversions ORDER BY converted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	var convs []Conversion
	for rows.Next() {
		conv, err := scanConversion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

// Ping verifies the database connection is alive.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func scanConversion(scan func(dest ...any) error) (Conversion, error) {
	var conv Conversion
	var sourceMod, convertedAt int64
	err := scan(&conv.ID, &conv.SourcePath, &sourceMod, &conv.Filetype, &conv.Datatype,
		&conv.OutputPath, &conv.Datasets, &convertedAt)
	if err != nil {
		return Conversion{}, err
	}
	conv.SourceMod = time.Unix(0, sourceMod).UTC()
	conv.ConvertedAt = time.Unix(0, convertedAt).UTC()
	return conv, nil
}
