package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/database"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepoUpsert(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r, err := NewSQLiteRepo(db)
	require.NoError(t, err)

	_, err = r.Get(ctx, "faqs")
	require.ErrorIs(t, err, ErrNotFound)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Put(ctx, &content.Document{Key: "faqs", Payload: []byte(`{"heading":"FAQ"}`), UpdatedAt: now}))
	require.NoError(t, r.Put(ctx, &content.Document{Key: "faqs", Payload: []byte(`{"heading":"Questions"}`), UpdatedAt: now.Add(time.Hour)}))

	got, err := r.Get(ctx, "faqs")
	require.NoError(t, err)
	require.JSONEq(t, `{"heading":"Questions"}`, string(got.Payload))
	require.True(t, got.UpdatedAt.Equal(now.Add(time.Hour)))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM site_content`).Scan(&n))
	require.Equal(t, 1, n)
}
