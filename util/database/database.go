package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingAttempts = 3
	pingBackoff  = 2 * time.Second
	pingTimeout  = 10 * time.Second
)

// Open returns a ready *sql.DB over the pgx driver. Connectivity is
// verified with a bounded retry so a slow-starting database does not
// kill the process on the first ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(30 * time.Second)

	var pingErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		pingErr = db.PingContext(pctx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		slog.Warn("db ping failed", "attempt", attempt, "err", pingErr)
		if attempt < pingAttempts {
			time.Sleep(pingBackoff)
		}
	}
	_ = db.Close()
	return nil, fmt.Errorf("connect database: %w", pingErr)
}
