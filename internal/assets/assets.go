// Package assets attaches uploaded images to content sections and removes
// them again. Stored refs look like /uploads/<section>/<field>-<uuid><ext>.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"regexp"
	"strings"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/schema"
	"github.com/globalsolutions/website/backend/internal/storage"
	"github.com/globalsolutions/website/backend/pkg/logger"
	"github.com/globalsolutions/website/backend/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const refPrefix = "/uploads/"

// defaultMaxPixels bounds width*height read from an image header before
// anything is decoded.
const defaultMaxPixels = 40_000_000

var (
	ErrInvalidRef = errors.New("invalid asset reference")
	ErrNotImage   = errors.New("file is not a supported image")
	ErrTooLarge   = errors.New("file too large")
	ErrBadField   = errors.New("invalid field name")
)

var (
	slugRe  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	fieldRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)
	nameRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

var formats = map[string]struct{ ext, mime string }{
	"png":  {".png", "image/png"},
	"jpeg": {".jpg", "image/jpeg"},
	"gif":  {".gif", "image/gif"},
	"webp": {".webp", "image/webp"},
}

type Options struct {
	// MaxBytes caps an upload. Zero means 5 MiB.
	MaxBytes int64
	// MaxWidth downscales wider images when positive. GIFs are kept as-is.
	MaxWidth int
	// MaxPixels caps width*height. Zero means 40 megapixels.
	MaxPixels int64
}

type Service struct {
	store    storage.BlobStore
	registry *schema.Registry
	opts     Options
}

func NewService(store storage.BlobStore, registry *schema.Registry, opts Options) *Service {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = defaultMaxPixels
	}
	return &Service{store: store, registry: registry, opts: opts}
}

type AttachInput struct {
	Section string
	Field   string
	Body    io.Reader
	// OldRef is the asset the new one replaces, if any.
	OldRef string
}

type AttachResult struct {
	Ref string
	// OldDeleteErr is set when removing OldRef failed for a reason other
	// than it being absent. The new asset is stored regardless. OldRefs
	// outside /uploads/ are not ours and are left alone.
	OldDeleteErr error
}

// Attach stores an image for section/field and best-effort deletes OldRef.
func (s *Service) Attach(ctx context.Context, in AttachInput) (AttachResult, error) {
	if _, ok := s.registry.Lookup(in.Section); !ok {
		return AttachResult{}, content.ErrUnknownSection
	}
	field := in.Field
	if field == "" {
		field = "image"
	}
	if !fieldRe.MatchString(field) {
		return AttachResult{}, ErrBadField
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, s.opts.MaxBytes+1))
	if err != nil {
		return AttachResult{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.opts.MaxBytes {
		metrics.AssetOps.WithLabelValues("attach", "too_large").Inc()
		return AttachResult{}, ErrTooLarge
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	f, known := formats[format]
	if err != nil || !known {
		metrics.AssetOps.WithLabelValues("attach", "invalid").Inc()
		return AttachResult{}, ErrNotImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > s.opts.MaxPixels {
		metrics.AssetOps.WithLabelValues("attach", "too_large").Inc()
		return AttachResult{}, ErrTooLarge
	}

	if s.opts.MaxWidth > 0 && cfg.Width > s.opts.MaxWidth && format != "gif" {
		out, outFormat, err := downscale(data, s.opts.MaxWidth)
		if err != nil {
			metrics.AssetOps.WithLabelValues("attach", "invalid").Inc()
			return AttachResult{}, ErrNotImage
		}
		data, f = out, formats[outFormat]
	}

	key := "uploads/" + in.Section + "/" + field + "-" + uuid.NewString() + f.ext
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), f.mime); err != nil {
		metrics.AssetOps.WithLabelValues("attach", "error").Inc()
		return AttachResult{}, &content.StorageError{Op: "upload", Key: key, Err: err}
	}
	res := AttachResult{Ref: "/" + key}
	metrics.AssetOps.WithLabelValues("attach", "ok").Inc()

	// refs outside /uploads/ are defaults such as the placeholder image
	if strings.HasPrefix(in.OldRef, refPrefix) {
		if err := s.Detach(ctx, in.OldRef); err != nil {
			logger.Warnf("assets: could not remove replaced asset %s: %v", in.OldRef, err)
			res.OldDeleteErr = err
		}
	}
	return res, nil
}

// Detach deletes the asset at ref. An asset that is already gone counts as deleted.
func (s *Service) Detach(ctx context.Context, ref string) error {
	_, key, err := ParseRef(ref)
	if err != nil {
		return err
	}
	err = s.store.Delete(ctx, key)
	switch {
	case err == nil:
		metrics.AssetOps.WithLabelValues("detach", "ok").Inc()
		return nil
	case errors.Is(err, storage.ErrObjectNotFound):
		metrics.AssetOps.WithLabelValues("detach", "missing").Inc()
		return nil
	default:
		metrics.AssetOps.WithLabelValues("detach", "error").Inc()
		return &content.StorageError{Op: "delete", Key: key, Err: err}
	}
}

// ParseRef splits "/uploads/<section>/<name>" and returns the section and
// the storage key. Anything else, including traversal, is ErrInvalidRef.
func ParseRef(ref string) (section, key string, err error) {
	rest, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		return "", "", ErrInvalidRef
	}
	section, name, ok := strings.Cut(rest, "/")
	if !ok || !slugRe.MatchString(section) || !nameRe.MatchString(name) || strings.Contains(name, "..") {
		return "", "", ErrInvalidRef
	}
	return section, "uploads/" + section + "/" + name, nil
}

// downscale resizes to width w keeping the aspect ratio. PNG stays PNG,
// everything else is re-encoded as JPEG.
func downscale(data []byte, w int) ([]byte, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	b := src.Bounds()
	h := b.Dy() * w / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "png", nil
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "jpeg", nil
}
