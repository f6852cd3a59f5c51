package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	embedsql "github.com/nick-dorsch/ticklist/embed/sql"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var ErrUnsupportedDriver = errors.New("unsupported storage driver")

// DB is a key-value store backed by a single SQL table.
type DB struct {
	*sql.DB
	driver           string
	onChange         func(ctx context.Context)
	onChangeMu       sync.RWMutex
	onChangeDisabled bool
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) SetOnChange(fn func(ctx context.Context)) {
	db.onChangeMu.Lock()
	defer db.onChangeMu.Unlock()
	db.onChange = fn
}

func (db *DB) DisableOnChange() {
	db.onChangeMu.Lock()
	defer db.onChangeMu.Unlock()
	db.onChangeDisabled = true
}

func (db *DB) EnableOnChange() {
	db.onChangeMu.Lock()
	defer db.onChangeMu.Unlock()
	db.onChangeDisabled = false
}

func (db *DB) triggerChange(ctx context.Context) {
	db.onChangeMu.RLock()
	fn := db.onChange
	disabled := db.onChangeDisabled
	db.onChangeMu.RUnlock()

	if fn != nil && !disabled {
		fn(ctx)
	}
}

// Open opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	return OpenDSN(DriverSQLite, path)
}

// OpenDSN opens a store using the named driver. For sqlite the DSN is a file
// path or ":memory:"; for mysql it is a go-sql-driver DSN.
func OpenDSN(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverMySQL:
		return openMySQL(dsn)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
}

func openSQLite(path string) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	return &DB{DB: db, driver: DriverSQLite}, nil
}

func openMySQL(dsn string) (*DB, error) {
	db, err := sql.Open(DriverMySQL, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	return &DB{DB: db, driver: DriverMySQL}, nil
}

// Driver returns the name of the SQL driver backing the store.
func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Migrate(ctx context.Context, schema string) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (db *DB) Init(ctx context.Context) error {
	if db.driver == DriverMySQL {
		return db.Migrate(ctx, embedsql.MySQLSchema)
	}
	return db.Migrate(ctx, embedsql.SQLiteSchema)
}

// Get returns the value stored under key. A missing key is not an error.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT entry_value FROM kv_entries WHERE entry_key = ?`
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	if err := db.set(ctx, db.DB, key, value); err != nil {
		return err
	}

	db.triggerChange(ctx)
	return nil
}

func (db *DB) set(ctx context.Context, exec executor, key, value string) error {
	query := `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(entry_key) DO UPDATE
		SET entry_value = excluded.entry_value, updated_at = CURRENT_TIMESTAMP
	`
	if db.driver == DriverMySQL {
		query = `
			INSERT INTO kv_entries (entry_key, entry_value)
			VALUES (?, ?)
			ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)
		`
	}

	if _, err := exec.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (db *DB) Delete(ctx context.Context, key string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows > 0 {
		db.triggerChange(ctx)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (db *DB) Keys(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT entry_key FROM kv_entries ORDER BY entry_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return keys, nil
}
