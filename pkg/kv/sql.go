package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"moneymaster-server/pkg/db"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

type dialect struct {
	get string
	set string
}

var postgresDialect = dialect{
	get: `
SELECT value
FROM kv
WHERE name = $1`,
	set: `
INSERT INTO kv (name, value)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE
SET value = EXCLUDED.value,
    updated = (NOW() AT TIME ZONE 'utc')`,
}

var sqliteDialect = dialect{
	get: `
SELECT value
FROM kv
WHERE name = ?`,
	set: `
INSERT INTO kv (name, value)
VALUES (?, ?)
ON CONFLICT (name) DO UPDATE
SET value = excluded.value,
    updated = CURRENT_TIMESTAMP`,
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
    name    TEXT PRIMARY KEY,
    value   TEXT NOT NULL,
    updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQL is a store backed by a kv table
// Postgres gets its table from the migrations, SQLite creates it on open
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// NewPostgres returns a store using an open postgres connection
func NewPostgres(dbh *sql.DB) *SQL {
	return &SQL{db: dbh, dialect: postgresDialect}
}

// NewSQLite opens or creates the SQLite database at path
func NewSQLite(path string) (*SQL, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	dbh, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite is not concurrent for writes
	dbh.SetMaxOpenConns(1)

	if _, err := dbh.Exec(sqliteSchema); err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQL{db: dbh, dialect: sqliteDialect}, nil
}

// Get returns the value for key
func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.get, key)
	return scanValue(row)
}

// Set upserts the value for key
func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.set, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

// Close closes the underlying database
func (s *SQL) Close() error {
	return s.db.Close()
}

func scanValue(row db.Scanner) (string, error) {
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}

		return "", err
	}

	return value, nil
}
