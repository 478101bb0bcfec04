package export

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	digitizer "github.com/NilsChudalla/svg-digitizer-for-gempy"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS paths (
	pk INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS points (
	path_pk INTEGER NOT NULL REFERENCES paths(pk) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	px REAL NOT NULL,
	py REAL NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	z REAL NOT NULL,
	PRIMARY KEY (path_pk, seq)
);
`

// WriteSQLite appends paths to the SQLite database at dbPath, creating it if
// needed. Ids need not be unique. Everything is written in one transaction.
func WriteSQLite(ctx context.Context, dbPath string, paths []digitizer.SpatialPath) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPaths(ctx, tx, paths); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Printf("stored %d paths in %s", len(paths), dbPath)
	return nil
}

func insertPaths(ctx context.Context, tx *sql.Tx, paths []digitizer.SpatialPath) error {
	pathStmt, err := tx.PrepareContext(ctx, "INSERT INTO paths (id, label) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer pathStmt.Close()
	pointStmt, err := tx.PrepareContext(ctx, "INSERT INTO points (path_pk, seq, px, py, x, y, z) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer pointStmt.Close()

	for _, p := range paths {
		if len(p.Points) != len(p.Coords) {
			return fmt.Errorf("path %q: %d pixel points for %d coordinates", p.ID, len(p.Points), len(p.Coords))
		}
		res, err := pathStmt.ExecContext(ctx, p.ID, p.Label)
		if err != nil {
			return fmt.Errorf("path %q: %w", p.ID, err)
		}
		pk, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i, c := range p.Coords {
			px := p.Points[i]
			if _, err := pointStmt.ExecContext(ctx, pk, i, px.X, px.Y, c.X, c.Y, c.Z); err != nil {
				return fmt.Errorf("path %q: point %d: %w", p.ID, i, err)
			}
		}
	}
	return nil
}
