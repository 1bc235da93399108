package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/globalsolutions/website/backend/pkg/logger"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the hosted Postgres database and pings it, retrying
// with a doubling backoff so short network blips at startup do not kill the process.
func ConnectPostgres(ctx context.Context, url string, attempts int) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if attempts <= 0 {
		attempts = 1
	}
	backoff := time.Second
	for attempt := 1; attempt <= attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pctx)
		cancel()
		if err == nil {
			logger.Infof("connected to postgres (attempt %d)", attempt)
			return db, nil
		}
		logger.Warnf("attempt %d/%d: postgres ping failed: %v", attempt, attempts, err)
		if attempt < attempts {
			select {
			case <-ctx.Done():
				_ = db.Close()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	_ = db.Close()
	return nil, fmt.Errorf("postgres ping: %w", err)
}
