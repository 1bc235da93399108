package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/sections"
	"github.com/globalsolutions/website/backend/internal/storage"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newDiskService(t *testing.T, opts Options) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewDiskStore(root)
	require.NoError(t, err)
	return NewService(store, sections.NewRegistry(), opts), root
}

func refPath(root, ref string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
}

func TestAttachReplacesOldAsset(t *testing.T) {
	ctx := context.Background()
	svc, root := newDiskService(t, Options{})

	oldPath := filepath.Join(root, "uploads", "about", "old.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(oldPath), 0o755))
	require.NoError(t, os.WriteFile(oldPath, pngBytes(t, 2, 2), 0o644))

	res, err := svc.Attach(ctx, AttachInput{
		Section: "about",
		Field:   "heroImage",
		Body:    bytes.NewReader(pngBytes(t, 4, 3)),
		OldRef:  "/uploads/about/old.png",
	})
	require.NoError(t, err)
	require.NoError(t, res.OldDeleteErr)
	require.True(t, strings.HasPrefix(res.Ref, "/uploads/about/heroImage-"), res.Ref)
	require.True(t, strings.HasSuffix(res.Ref, ".png"), res.Ref)
	require.FileExists(t, refPath(root, res.Ref))
	require.NoFileExists(t, oldPath)
}

func TestAttachWithMissingOldAsset(t *testing.T) {
	svc, root := newDiskService(t, Options{})
	in := AttachInput{Section: "about", Field: "heroImage", OldRef: "/uploads/about/old.png"}

	in.Body = bytes.NewReader(pngBytes(t, 4, 3))
	first, err := svc.Attach(context.Background(), in)
	require.NoError(t, err)
	require.NoError(t, first.OldDeleteErr)

	in.Body = bytes.NewReader(pngBytes(t, 4, 3))
	second, err := svc.Attach(context.Background(), in)
	require.NoError(t, err)
	require.NotEqual(t, first.Ref, second.Ref)
	require.FileExists(t, refPath(root, first.Ref))
	require.FileExists(t, refPath(root, second.Ref))
}

func TestAttachReportsBadOldRefWithoutFailing(t *testing.T) {
	svc, root := newDiskService(t, Options{})
	res, err := svc.Attach(context.Background(), AttachInput{
		Section: "hero",
		Body:    bytes.NewReader(pngBytes(t, 2, 2)),
		OldRef:  "/uploads/../secrets.txt",
	})
	require.NoError(t, err)
	require.ErrorIs(t, res.OldDeleteErr, ErrInvalidRef)
	require.True(t, strings.HasPrefix(res.Ref, "/uploads/hero/image-"))
	require.FileExists(t, refPath(root, res.Ref))
}

func TestAttachIgnoresOldRefOutsideUploads(t *testing.T) {
	svc, root := newDiskService(t, Options{})
	res, err := svc.Attach(context.Background(), AttachInput{
		Section: "hero",
		Body:    bytes.NewReader(pngBytes(t, 2, 2)),
		OldRef:  sections.PlaceholderImage,
	})
	require.NoError(t, err)
	require.NoError(t, res.OldDeleteErr)
	require.FileExists(t, refPath(root, res.Ref))
}

// hugePNG is a valid 1x1 PNG whose header claims w x h pixels.
func hugePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	b := pngBytes(t, 1, 1)
	// IHDR data starts after the 8 byte signature and the chunk length and type
	binary.BigEndian.PutUint32(b[16:20], w)
	binary.BigEndian.PutUint32(b[20:24], h)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestAttachRejectsOversizedDimensions(t *testing.T) {
	ctx := context.Background()

	svc, _ := newDiskService(t, Options{MaxWidth: 10})
	body := hugePNG(t, 100_000, 100_000)
	cfg, err := png.DecodeConfig(bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 100_000, cfg.Width)
	_, err = svc.Attach(ctx, AttachInput{Section: "hero", Body: bytes.NewReader(body)})
	require.ErrorIs(t, err, ErrTooLarge)

	small, _ := newDiskService(t, Options{MaxPixels: 100})
	_, err = small.Attach(ctx, AttachInput{Section: "hero", Body: bytes.NewReader(pngBytes(t, 20, 20))})
	require.ErrorIs(t, err, ErrTooLarge)
	_, err = small.Attach(ctx, AttachInput{Section: "hero", Body: bytes.NewReader(pngBytes(t, 10, 10))})
	require.NoError(t, err)
}

func TestAttachRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDiskService(t, Options{MaxBytes: 64})

	_, err := svc.Attach(ctx, AttachInput{Section: "pricing", Body: bytes.NewReader(pngBytes(t, 1, 1))})
	require.ErrorIs(t, err, content.ErrUnknownSection)

	_, err = svc.Attach(ctx, AttachInput{Section: "hero", Field: "../x", Body: bytes.NewReader(pngBytes(t, 1, 1))})
	require.ErrorIs(t, err, ErrBadField)

	_, err = svc.Attach(ctx, AttachInput{Section: "hero", Body: strings.NewReader("plain text, not an image")})
	require.ErrorIs(t, err, ErrNotImage)

	_, err = svc.Attach(ctx, AttachInput{Section: "hero", Body: bytes.NewReader(make([]byte, 65))})
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestAttachDownscalesWideImages(t *testing.T) {
	svc, root := newDiskService(t, Options{MaxWidth: 10})
	res, err := svc.Attach(context.Background(), AttachInput{Section: "hero", Body: bytes.NewReader(pngBytes(t, 40, 20))})
	require.NoError(t, err)

	f, err := os.Open(refPath(root, res.Ref))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 10, cfg.Width)
	require.Equal(t, 5, cfg.Height)
}

func TestDetachIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, root := newDiskService(t, Options{})
	res, err := svc.Attach(ctx, AttachInput{Section: "services", Field: "image", Body: bytes.NewReader(pngBytes(t, 2, 2))})
	require.NoError(t, err)

	require.NoError(t, svc.Detach(ctx, res.Ref))
	require.NoFileExists(t, refPath(root, res.Ref))
	require.NoError(t, svc.Detach(ctx, res.Ref))
}

type brokenStore struct{ err error }

func (b brokenStore) Put(context.Context, string, io.Reader, int64, string) error { return b.err }
func (b brokenStore) Delete(context.Context, string) error                       { return b.err }

func TestStorageErrors(t *testing.T) {
	boom := errors.New("permission denied")
	svc := NewService(brokenStore{err: boom}, sections.NewRegistry(), Options{})

	_, err := svc.Attach(context.Background(), AttachInput{Section: "hero", Body: bytes.NewReader(pngBytes(t, 1, 1))})
	require.ErrorIs(t, err, content.ErrStorage)
	require.ErrorIs(t, err, boom)

	err = svc.Detach(context.Background(), "/uploads/hero/a.png")
	require.ErrorIs(t, err, content.ErrStorage)
}

func TestParseRef(t *testing.T) {
	section, key, err := ParseRef("/uploads/about/heroImage-1.png")
	require.NoError(t, err)
	require.Equal(t, "about", section)
	require.Equal(t, "uploads/about/heroImage-1.png", key)

	for _, ref := range []string{
		"",
		"uploads/about/a.png",
		"/uploads/about",
		"/uploads/about/",
		"/uploads/../a.png",
		"/uploads/about/../../etc/passwd",
		"/uploads/about/sub/a.png",
		"/uploads/About/a.png",
		"/uploads/about/..png",
		"https://cdn.example.com/uploads/about/a.png",
	} {
		_, _, err := ParseRef(ref)
		require.ErrorIs(t, err, ErrInvalidRef, ref)
	}
}
