package backends

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/globalsolutions/website/backend/internal/config"
	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/repository"
	"github.com/globalsolutions/website/backend/internal/storage"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Content: config.ContentConfig{Backend: config.BackendFile, DataDir: filepath.Join(dir, "content")},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(dir, "content.db")},
		Redis:   config.RedisConfig{Port: "6379", Prefix: "content:"},
		Uploads: config.UploadsConfig{Backend: "disk", PublicDir: filepath.Join(dir, "public"), MaxBytes: 1 << 20},
	}
}

func TestContentRoutesSectionsToTheirBackends(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Host, cfg.Redis.Port = mr.Host(), mr.Port()
	cfg.Content.SectionBackends = map[string]string{"faqs": config.BackendSQLite, "navbar": config.BackendRedis}

	set := New(cfg)
	defer set.Close()
	repo, err := set.Content(ctx)
	require.NoError(t, err)
	routed, ok := repo.(*repository.RoutedRepo)
	require.True(t, ok)

	require.IsType(t, &repository.SQLiteRepo{}, routed.For("faqs"))
	require.IsType(t, &repository.RedisRepo{}, routed.For("navbar"))
	require.IsType(t, &repository.FileRepo{}, routed.For("hero"))
	require.Equal(t, config.BackendSQLite, set.BackendFor("faqs"))
	require.Equal(t, config.BackendFile, set.BackendFor("hero"))

	require.NoError(t, repo.Put(ctx, &content.Document{Key: "navbar", Payload: []byte(`{"logo":"x"}`)}))
	require.True(t, mr.Exists("content:navbar"))

	deps := set.Ready(ctx)
	require.Equal(t, map[string]bool{"sqlite": true, "redis": true}, deps)
}

func TestContentRejectsUnknownSectionOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.Content.SectionBackends = map[string]string{"faq": config.BackendSQLite}

	set := New(cfg)
	defer set.Close()
	_, err := set.Content(context.Background())
	require.ErrorContains(t, err, `unknown section "faq"`)
}

func TestRepoIsOpenedOnce(t *testing.T) {
	set := New(testConfig(t))
	defer set.Close()
	a, err := set.Repo(context.Background(), config.BackendMemory)
	require.NoError(t, err)
	b, err := set.Repo(context.Background(), config.BackendMemory)
	require.NoError(t, err)
	require.Same(t, a, b)

	_, err = set.Repo(context.Background(), "cassandra")
	require.Error(t, err)
}

func TestBlobsDisk(t *testing.T) {
	set := New(testConfig(t))
	blobs, disk, err := set.Blobs()
	require.NoError(t, err)
	require.NotNil(t, disk)
	require.IsType(t, &storage.DiskStore{}, blobs)
}

func TestPostgresRequiresURL(t *testing.T) {
	set := New(testConfig(t))
	_, err := set.Repo(context.Background(), config.BackendPostgres)
	require.Error(t, err)
}
