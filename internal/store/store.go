// Package store owns the SQLite connection and schema, grounded in the
// teacher's db.go initDB/createSchema shape and generalized to the
// survival-game tables of SPEC_FULL §3.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Open opens (creating parent directories as needed) a SQLite database at
// path using the named driver ("sqlite3" for mattn/go-sqlite3's cgo driver,
// "sqlite" for modernc.org/sqlite's pure-Go driver), applies WAL journal
// mode and a busy timeout, and creates the schema if missing.
func Open(driver, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("store: creating data dir: %w", err)
		}
	}

	dsn := path
	switch driver {
	case "sqlite3":
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	case "sqlite":
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return db, nil
}

// OpenMemory opens an in-memory SQLite database for tests, always via the
// cgo mattn driver which supports the shared-cache in-memory DSN the
// teacher's own ownworld_test.go relies on.
func OpenMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // one connection so the in-memory DB isn't dropped
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
