package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/leadtime/internal/db"
)

// NewTestDB opens a private in-memory store with the program, gate and part
// schema applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW returns the transactional runner the services use in production.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CountRows reports how many rows table holds, for asserting that a failed
// write left the store untouched.
func CountRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	switch table {
	case "programs", "program_gates", "parts":
	default:
		t.Fatalf("CountRows: unknown table %q", table)
	}
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
