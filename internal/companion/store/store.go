// Package store implements the local side of the companion's persistence:
// four independently keyed records (account metadata, primer, session list,
// settings) in a sqlite-backed key/value table. It is a pure on-device
// cache with no network awareness. A record that fails to decode is treated
// as absent and replaced by its default, never surfaced as an error.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/magielabs/companion/internal/companion/models"
	"github.com/magielabs/companion/internal/companion/store/migrations"
	"github.com/magielabs/companion/internal/dbx"
	"github.com/magielabs/companion/internal/logging"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Slot keys for the four account-owned records.
const (
	keyUserData = "user_data"
	keyPrimer   = "primer"
	keySessions = "sessions"
	keySettings = "settings"
)

// keyDeviceID identifies the local database, not the account, and is
// deliberately not wiped by ClearAll.
const keyDeviceID = "device_id"

// Store is the synchronous local persistence layer.
type Store struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the local database at dsn, applies
// migrations, and seeds the default records on first run.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, log: log, now: time.Now}
	if err := s.ensureInitialized(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) repo() *recordsRepo {
	return newRecordsRepo(s.db)
}

// ensureInitialized seeds all four slots with defaults when the account
// metadata slot is absent (first launch or post-ClearAll).
func (s *Store) ensureInitialized(ctx context.Context) error {
	existing, err := s.repo().get(ctx, keyUserData)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := s.now()
	meta := models.AccountMeta{CreatedAt: now, LastVisit: now}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newRecordsRepo(tx)
		if err := setJSON(ctx, repo, keyUserData, meta); err != nil {
			return err
		}
		if err := setJSON(ctx, repo, keyPrimer, models.DefaultPrimer()); err != nil {
			return err
		}
		if err := setJSON(ctx, repo, keySessions, []models.Session{}); err != nil {
			return err
		}
		return setJSON(ctx, repo, keySettings, models.DefaultSettings())
	})
}

// DeviceID returns the stable identifier of this local database, minting
// one on first call. It survives ClearAll.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	raw, err := s.repo().get(ctx, keyDeviceID)
	if err != nil {
		return "", err
	}
	if len(raw) > 0 {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := s.repo().set(ctx, keyDeviceID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// ClearAll removes all four account-owned records and re-seeds defaults,
// so the next reads start from an empty state. Runs in one transaction.
func (s *Store) ClearAll(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newRecordsRepo(tx)
		for _, key := range []string{keyUserData, keyPrimer, keySessions, keySettings} {
			if err := repo.delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.ensureInitialized(ctx)
}

func setJSON(ctx context.Context, repo *recordsRepo, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record[%s]: %w", key, err)
	}
	return repo.set(ctx, key, data)
}

// getJSON decodes the slot into dst. Absent or corrupt values leave dst
// untouched and report found=false; corruption is logged, not returned.
// Decoding goes through a fresh value because json.Unmarshal populates
// fields up to the point of a type error: a record that fails mid-decode
// must not leave dst holding a mix of decoded and default fields.
func (s *Store) getJSON(ctx context.Context, key string, dst any) (found bool, err error) {
	raw, err := s.repo().get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	tmp := reflect.New(reflect.TypeOf(dst).Elem())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		s.log.Warn(ctx, "corrupt local record, using default", "key", key, "error", err)
		return false, nil
	}
	reflect.ValueOf(dst).Elem().Set(tmp.Elem())
	return true, nil
}
