package repository

import (
	"context"

	"github.com/globalsolutions/website/backend/internal/content"
)

// RoutedRepo sends each section to its own backend. Sections without a
// route use the fallback. The site keeps some sections in flat files and
// others in the hosted database; this keeps that split in configuration.
type RoutedRepo struct {
	fallback Repository
	routes   map[string]Repository
}

func NewRoutedRepo(fallback Repository, routes map[string]Repository) *RoutedRepo {
	if routes == nil {
		routes = map[string]Repository{}
	}
	return &RoutedRepo{fallback: fallback, routes: routes}
}

// For returns the backend responsible for key.
func (r *RoutedRepo) For(key string) Repository {
	if repo, ok := r.routes[key]; ok {
		return repo
	}
	return r.fallback
}

func (r *RoutedRepo) Get(ctx context.Context, key string) (*content.Document, error) {
	return r.For(key).Get(ctx, key)
}

func (r *RoutedRepo) Put(ctx context.Context, doc *content.Document) error {
	return r.For(doc.Key).Put(ctx, doc)
}
