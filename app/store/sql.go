package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var _ KV = (*SQLKV)(nil)

type dialect struct {
	create string
	upsert string
}

var dialects = map[string]dialect{
	"mysql": {
		create: `CREATE TABLE IF NOT EXISTS kv_store (
    entry_key VARCHAR(191) PRIMARY KEY,
    entry_value LONGTEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`,
		upsert: `INSERT INTO kv_store (entry_key, entry_value) VALUES (?, ?)
    ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)`,
	},
	"postgres": {
		create: `CREATE TABLE IF NOT EXISTS kv_store (
    entry_key TEXT PRIMARY KEY,
    entry_value TEXT NOT NULL,
    updated_at TIMESTAMPTZ DEFAULT now()
)`,
		upsert: `INSERT INTO kv_store (entry_key, entry_value) VALUES (?, ?)
    ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = now()`,
	},
}

// SQLKV keeps entries in a kv_store table on MySQL or PostgreSQL.
type SQLKV struct {
	db *sqlx.DB
	d  dialect
}

// NewSQL connects with the given driver ("mysql" or "postgres") and creates the table if missing.
func NewSQL(ctx context.Context, driver, dsn string) (*SQLKV, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("store: unsupported sql driver %q", driver)
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	s := &SQLKV{db: db, d: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLKV) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.d.create)
	return err
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var v string
	err := s.db.GetContext(ctx, &v, s.db.Rebind(`SELECT entry_value FROM kv_store WHERE entry_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *SQLKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(s.d.upsert), key, string(value))
	return err
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM kv_store WHERE entry_key = ?`), key)
	return err
}

func (s *SQLKV) Close() error { return s.db.Close() }
