// Package testutil holds shared helpers for tests that need a real Postgres
// database. The database is selected by the TEST_DATABASE_URL environment
// variable; when it is unset, every helper skips its test, so the integration
// suites are opt-in.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql
)

const dsnEnv = "TEST_DATABASE_URL"

// Pool connects a *pgxpool.Pool to the test database and registers its
// shutdown with t.Cleanup. Skips the test when no test database is configured.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), dsn(t))
	if err != nil {
		t.Fatalf("testutil: connect pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// SQLDB connects a database/sql handle to the test database, for callers that
// need *sql.DB rather than a pgx pool (goose, for one). Closed via t.Cleanup.
func SQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenSQL(dsn(t))
	if err != nil {
		t.Fatalf("testutil: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// OpenSQL opens and pings a *sql.DB for the given DSN. It exists separately
// from SQLDB because TestMain has no *testing.T; callers close the handle.
func OpenSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func dsn(t *testing.T) string {
	t.Helper()
	v := os.Getenv(dsnEnv)
	if v == "" {
		t.Skipf("%s not set; skipping integration test", dsnEnv)
	}
	return v
}
