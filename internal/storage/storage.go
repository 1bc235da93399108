// Package storage holds uploaded binary assets: images referenced from
// content payloads. Keys are slash separated paths such as
// "uploads/about/heroImage-<uuid>.png".
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Delete when the key holds nothing.
var ErrObjectNotFound = errors.New("object not found")

// BlobStore is implemented by DiskStore and MinIOStorage.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}
