package repository

import (
	"context"
	"errors"

	"github.com/globalsolutions/website/backend/internal/content"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository persists whole section documents. Put replaces any existing
// document for doc.Key in one step; readers never see a partial payload.
type Repository interface {
	Get(ctx context.Context, key string) (*content.Document, error)
	Put(ctx context.Context, doc *content.Document) error
}
