// Package testsupport provides shared fixtures for database-backed tests.
package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared in-memory SQLite database. The shared
// cache keeps the same database alive across connections until the last
// handle closes, so a test that closes its handle leaves a fresh database
// for the next one.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}
