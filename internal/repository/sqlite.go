package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dastanaron/tabmarks/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db    *sql.DB
	sync  *kvArea
	local *kvArea
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// single writer, requests for the same key serialize on the connection
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db:    db,
		sync:  &kvArea{db: db, area: AreaSync},
		local: &kvArea{db: db, area: AreaLocal},
	}, nil
}

func initSchema(db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS kv (
		area TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (area, key)
	);
	`
	_, err := db.Exec(createTables)
	return err
}

// Sync returns the settings area
func (r *SQLiteRepository) Sync() KVStore {
	return r.sync
}

// Local returns the device-local area
func (r *SQLiteRepository) Local() KVStore {
	return r.local
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// kvArea implements KVStore over one area of the kv table
type kvArea struct {
	db   *sql.DB
	area string
}

func (a *kvArea) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := a.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE area = ? AND key = ?`, a.area, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &models.StorageError{Op: "get", Key: key, Err: err}
	}
	return []byte(value), true, nil
}

func (a *kvArea) Set(ctx context.Context, key string, value []byte) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO kv(area, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(area, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, a.area, key, string(value), time.Now().Unix())
	if err != nil {
		return &models.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (a *kvArea) Delete(ctx context.Context, key string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM kv WHERE area = ? AND key = ?`, a.area, key)
	if err != nil {
		return &models.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
