package donestate

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresBackend keeps the list in the done_files table, one row per
// identifier ordered by position.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS done_files (
	position  INTEGER PRIMARY KEY,
	file_path TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("create done_files table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Read(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT file_path FROM done_files ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query done_files: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan done_files: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate done_files: %w", err)
	}
	return ids, nil
}

func (b *PostgresBackend) Write(ctx context.Context, ids []string) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM done_files`); err != nil {
		return fmt.Errorf("clear done_files: %w", err)
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `INSERT INTO done_files (position, file_path) VALUES ($1, $2)`, i, id); err != nil {
			return fmt.Errorf("insert done_files: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit done_files: %w", err)
	}
	return nil
}
