package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/lib/pq"
)

// PostgresRepo stores sections as jsonb rows in the hosted (Supabase) database.
type PostgresRepo struct {
	db    *sql.DB
	table string
}

// NewPostgresRepo uses table (default "site_content"). The name is quoted,
// never interpolated raw.
func NewPostgresRepo(db *sql.DB, table string) *PostgresRepo {
	if table == "" {
		table = "site_content"
	}
	return &PostgresRepo{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureTable creates the content table when it is missing.
func (p *PostgresRepo) EnsureTable(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    payload JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, p.table))
	return err
}

func (p *PostgresRepo) Get(ctx context.Context, key string) (*content.Document, error) {
	doc := &content.Document{Key: key}
	var payload []byte
	err := p.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT payload, updated_at FROM %s WHERE key = $1`, p.table), key).
		Scan(&payload, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc.Payload = payload
	return doc, nil
}

func (p *PostgresRepo) Put(ctx context.Context, doc *content.Document) error {
	_, err := p.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (key, payload, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`, p.table),
		doc.Key, string(doc.Payload), doc.UpdatedAt)
	return err
}
