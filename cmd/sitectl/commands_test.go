package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/globalsolutions/website/backend/internal/auth"
	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/repository"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONTENT_BACKEND", "file")
	t.Setenv("CONTENT_DATA_DIR", filepath.Join(dir, "content"))
	t.Setenv("CONTENT_SECTION_BACKENDS", "")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "content.db"))
	t.Setenv("UPLOADS_PUBLIC_DIR", filepath.Join(dir, "public"))
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInitAndGet(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "", "init", "hero")
	require.NoError(t, err)
	require.Contains(t, out, "hero ok")
	require.FileExists(t, filepath.Join(dir, "content", "hero.json"))

	out, err = run(t, "", "get", "hero")
	require.NoError(t, err)
	require.Contains(t, out, `"tag": "GLOBAL SOLUTIONS"`)
}

func TestPutValidatesPayload(t *testing.T) {
	setupEnv(t)

	out, err := run(t, `{"heading":"","items":[]}`, "put", "faqs", "-")
	require.Error(t, err)
	require.Contains(t, out, "Heading is required")

	_, err = run(t, `{"heading":"FAQ","items":[{"question":"Q","answer":"A"}]}`, "put", "faqs", "-")
	require.NoError(t, err)
	out, err = run(t, "", "get", "faqs")
	require.NoError(t, err)
	require.Contains(t, out, `"heading": "FAQ"`)
}

func TestCopyToSQLite(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "", "init", "hero", "footer")
	require.NoError(t, err)

	out, err := run(t, "", "copy", "--to", "sqlite")
	require.NoError(t, err)
	require.Contains(t, out, "copied 2 document(s) to sqlite")
	require.Contains(t, out, "faqs skipped")

	t.Setenv("CONTENT_SECTION_BACKENDS", "footer=sqlite")
	out, err = run(t, "", "sections")
	require.NoError(t, err)
	require.Contains(t, out, "footer")
	require.Contains(t, out, "sqlite")
}

func TestCopyDocuments(t *testing.T) {
	ctx := context.Background()
	src := repository.NewMemoryRepo()
	require.NoError(t, src.Put(ctx, &content.Document{Key: "hero", Payload: []byte(`{}`)}))
	require.NoError(t, src.Put(ctx, &content.Document{Key: "a/b", Payload: []byte(`{}`)}))
	dst, err := repository.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := copyDocuments(ctx, src, dst, []string{"hero", "about"}, &out)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Contains(t, out.String(), "about skipped")

	doc, err := dst.Get(ctx, "hero")
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(doc.Payload))

	_, err = copyDocuments(ctx, src, dst, []string{"a/b"}, &out)
	require.ErrorContains(t, err, "write a/b")
}

func TestTokenCommand(t *testing.T) {
	setupEnv(t)
	secret := "test-secret-32-bytes-should-be-long-enough"
	t.Setenv("AUTH_JWT_SECRET", secret)
	t.Setenv("ADMIN_ROLE", "admin")

	out, err := run(t, "", "token", "--email", "admin@example.com", "--role", "admin")
	require.NoError(t, err)

	v, err := auth.NewHMACVerifier(secret)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)

	_, err = run(t, "", "token")
	require.Error(t, err)
}

func TestPutFromFile(t *testing.T) {
	dir := setupEnv(t)
	p := filepath.Join(dir, "nav.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"logo":"/logo.svg","links":[{"label":"Home","href":"/"}]}`), 0o644))
	out, err := run(t, "", "put", "navbar", p)
	require.NoError(t, err)
	require.Contains(t, out, "navbar saved")
}
