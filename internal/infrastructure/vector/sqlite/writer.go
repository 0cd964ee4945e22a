package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// Write creates (or replaces) an index file with one row per vector, row i
// aligned to catalog position i. Called by the offline indexer only; the
// serving process opens the result read-only.
func Write(path, model string, vectors [][]float32) error {
	if len(vectors) == 0 {
		return fmt.Errorf("no vectors to write")
	}
	dimension := len(vectors[0])
	for i, vector := range vectors {
		if len(vector) != dimension {
			return fmt.Errorf("vector %d has dimension %d, expected %d", i, len(vector), dimension)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open index %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		DROP TABLE IF EXISTS embeddings;
		CREATE TABLE embeddings (
			position   INTEGER PRIMARY KEY,
			vector     BLOB NOT NULL,
			dimension  INTEGER NOT NULL,
			model      TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("create embeddings table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO embeddings (position, vector, dimension, model, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for position, vector := range vectors {
		if _, err := stmt.Exec(position, vectorToBlob(vector), dimension, model, now); err != nil {
			return fmt.Errorf("insert vector %d: %w", position, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}
