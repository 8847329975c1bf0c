package repositories

import (
	"database/sql"
	"fmt"
)

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// The counter lives in a single-row table named <table>_sequence.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1 RETURNING value", sequenceTable)).Scan(&sequence)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("sequence table %s is not seeded", sequenceTable)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}
	return sequence, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}
