package repository

import (
	"context"
	"testing"
	"time"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoGetPut(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	_, err := r.Get(ctx, "hero")
	require.ErrorIs(t, err, ErrNotFound)

	payload := []byte(`{"title":"Hello"}`)
	require.NoError(t, r.Put(ctx, &content.Document{Key: "hero", Payload: payload, UpdatedAt: time.Now()}))

	// caller mutations must not leak into the store
	payload[2] = 'X'
	got, err := r.Get(ctx, "hero")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Hello"}`, string(got.Payload))

	got.Payload[2] = 'Y'
	again, err := r.Get(ctx, "hero")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Hello"}`, string(again.Payload))

	require.NoError(t, r.Put(ctx, &content.Document{Key: "hero", Payload: []byte(`{"title":"Second"}`)}))
	got, err = r.Get(ctx, "hero")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Second"}`, string(got.Payload))
}
