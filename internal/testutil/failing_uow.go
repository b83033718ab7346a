package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/alexanderramin/leadtime/internal/db"
)

// FailingWriteUoW runs the work in a real transaction but fails the Nth write
// (INSERT, UPDATE or DELETE) against Table with Err. Reads and writes to other
// tables pass through, so a test can break an import exactly at, say, the
// second part row and check that the gates written before it roll back.
type FailingWriteUoW struct {
	DB    *sql.DB
	Table string
	// Nth counts from 1; zero fails the first matching write.
	Nth int32
	Err error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	nth := u.Nth
	if nth < 1 {
		nth = 1
	}
	wrapped := &failingWrites{DBTX: tx, target: writePattern(u.Table), nth: nth, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

func writePattern(table string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)^\s*(INSERT\s+INTO|UPDATE|DELETE\s+FROM)\s+` + regexp.QuoteMeta(table) + `\b`)
}

type failingWrites struct {
	db.DBTX
	target *regexp.Regexp
	seen   atomic.Int32
	nth    int32
	err    error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.target.MatchString(query) && f.seen.Add(1) == f.nth {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
