// Package kv is the key-value store holding high scores, per-user earnings and posts
//
// Every read and write is a single key operation. There are no transactions
// across keys, so concurrent writers to the same key resolve as last-writer-wins.
package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"moneymaster-server/internal/config"
	"moneymaster-server/pkg/db"
)

// ErrNotFound is returned by Get when the key has never been set
var ErrNotFound = errors.New("key not found")

// HighScoreKey holds the best earnings recorded by any user
const HighScoreKey = "highScore"

// Store is a string key-value store
type Store interface {
	// Get returns the value for key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error
}

// StoreCloser is a Store holding resources that need to be released
type StoreCloser interface {
	Store
	io.Closer
}

// EarningsKey holds the cumulative earnings of a single user
func EarningsKey(userID string) string {
	return "earnings:" + userID
}

// PostKey holds a game post record
func PostKey(uuid string) string {
	return "post:" + uuid
}

// Open returns the store configured by the store driver
func Open() (StoreCloser, error) {
	cfg := config.Instance().Store
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		dbh, err := db.Open(cfg.PGDSN)
		if err != nil {
			return nil, err
		}

		return NewPostgres(dbh), nil
	case "sqlite":
		s, err := NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}

		return s, nil
	}

	return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
}
