package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lustless/lustless-client/internal/dbx"
)

const (
	queryGet    = `SELECT value FROM metadata WHERE key = ?`
	queryUpsert = `INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	queryDelete = `DELETE FROM metadata WHERE key = ?`
)

// SQLiteRepository keeps records in the metadata table created by the client
// migrations. It backs the token record and the onboarding scratch record,
// and works on a *sql.DB or inside a transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, queryGet, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	// The driver scans a zero-length BLOB as nil; keep it distinct from absent.
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set inserts or replaces the record and stamps updated_at.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, queryUpsert, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete is a no-op for an absent key.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, queryDelete, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
