package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/globalsolutions/website/backend/internal/content"
)

// SQLiteRepo stores sections in an embedded SQLite table (modernc.org/sqlite).
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo wraps an open database and creates the content table if needed.
func NewSQLiteRepo(db *sql.DB) (*SQLiteRepo, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS site_content (
    key TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepo{db: db}, nil
}

func (s *SQLiteRepo) Get(ctx context.Context, key string) (*content.Document, error) {
	var payload, updated string
	err := s.db.QueryRowContext(ctx, `SELECT payload, updated_at FROM site_content WHERE key = ?`, key).Scan(&payload, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc := &content.Document{Key: key, Payload: []byte(payload)}
	if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		doc.UpdatedAt = t
	}
	return doc, nil
}

func (s *SQLiteRepo) Put(ctx context.Context, doc *content.Document) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO site_content (key, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		doc.Key, string(doc.Payload), doc.UpdatedAt.UTC().Format(time.RFC3339Nano))
	return err
}
