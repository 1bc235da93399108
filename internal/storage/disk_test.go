package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStorePutDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewDiskStore(root)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "uploads/about/a.png", strings.NewReader("png-bytes"), 9, "image/png"))
	b, err := os.ReadFile(filepath.Join(root, "uploads", "about", "a.png"))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(b))

	require.NoError(t, s.Delete(ctx, "uploads/about/a.png"))
	require.ErrorIs(t, s.Delete(ctx, "uploads/about/a.png"), ErrObjectNotFound)

	entries, err := os.ReadDir(filepath.Join(root, "uploads", "about"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDiskStoreRejectsEscapingKeys(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"", "..", "../x.png", "/etc/passwd", "uploads/../../x"} {
		require.Error(t, s.Put(context.Background(), key, strings.NewReader("x"), 1, ""), key)
		require.Error(t, s.Delete(context.Background(), key), key)
	}
}
