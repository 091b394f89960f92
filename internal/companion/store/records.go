package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magielabs/companion/internal/dbx"
)

// recordsRepo is a key/value repository over the records table. Each named
// record occupies one row; values are opaque JSON blobs.
type recordsRepo struct {
	db dbx.DBTX
}

func newRecordsRepo(db dbx.DBTX) *recordsRepo {
	return &recordsRepo{db: db}
}

// get returns the stored value for key, or nil when the slot is absent.
func (r *recordsRepo) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return value, nil
}

func (r *recordsRepo) set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}

func (r *recordsRepo) delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}
