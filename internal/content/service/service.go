package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/repository"
	"github.com/globalsolutions/website/backend/internal/content/schema"
	"github.com/globalsolutions/website/backend/pkg/logger"
	"github.com/globalsolutions/website/backend/pkg/metrics"
)

// Gateway is the content store used by the HTTP handlers and sitectl.
type Gateway interface {
	// Load returns the stored payload for key. When nothing is stored and the
	// section has a default, the default is persisted first and returned.
	Load(ctx context.Context, key string) (json.RawMessage, error)
	// Save validates payload against the section rules and replaces the
	// stored value. It returns the sanitized payload that was written.
	Save(ctx context.Context, key string, payload json.RawMessage) (json.RawMessage, error)
	Sections() []SectionInfo
	Section(key string) (schema.Section, bool)
}

// SectionInfo describes a registered section for listings.
type SectionInfo struct {
	Key        string `json:"key"`
	Area       string `json:"area"`
	Path       string `json:"path"`
	HasDefault bool   `json:"hasDefault"`
}

type gateway struct {
	repo     repository.Repository
	registry *schema.Registry
	now      func() time.Time
}

func New(repo repository.Repository, registry *schema.Registry) Gateway {
	return &gateway{repo: repo, registry: registry, now: time.Now}
}

func (g *gateway) Section(key string) (schema.Section, bool) {
	return g.registry.Lookup(key)
}

func (g *gateway) Sections() []SectionInfo {
	all := g.registry.All()
	out := make([]SectionInfo, 0, len(all))
	for _, s := range all {
		out = append(out, SectionInfo{
			Key:        s.Key(),
			Area:       s.Area(),
			Path:       "/api/" + s.Area() + "/" + s.Key(),
			HasDefault: s.HasDefault(),
		})
	}
	return out
}

func (g *gateway) Load(ctx context.Context, key string) (json.RawMessage, error) {
	sec, ok := g.registry.Lookup(key)
	if !ok {
		return nil, content.ErrUnknownSection
	}
	doc, err := g.repo.Get(ctx, key)
	if err == nil {
		metrics.ContentOps.WithLabelValues(key, "load", "ok").Inc()
		return doc.Payload, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		metrics.ContentOps.WithLabelValues(key, "load", "error").Inc()
		return nil, &content.StorageError{Op: "load", Key: key, Err: err}
	}
	if !sec.HasDefault() {
		metrics.ContentOps.WithLabelValues(key, "load", "not_found").Inc()
		return nil, content.ErrNotFound
	}

	def, err := sec.Default()
	if err != nil {
		return nil, &content.StorageError{Op: "default", Key: key, Err: err}
	}
	if err := g.repo.Put(ctx, &content.Document{Key: key, Payload: def, UpdatedAt: g.now().UTC()}); err != nil {
		metrics.ContentOps.WithLabelValues(key, "load", "error").Inc()
		return nil, &content.StorageError{Op: "materialize", Key: key, Err: err}
	}
	logger.Infof("content: materialized default for section %s", key)
	metrics.ContentOps.WithLabelValues(key, "load", "default").Inc()
	return def, nil
}

func (g *gateway) Save(ctx context.Context, key string, payload json.RawMessage) (json.RawMessage, error) {
	sec, ok := g.registry.Lookup(key)
	if !ok {
		return nil, content.ErrUnknownSection
	}
	clean, err := sec.Prepare(payload)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			metrics.ContentOps.WithLabelValues(key, "save", "invalid").Inc()
			return nil, verr
		}
		return nil, err
	}
	if err := g.repo.Put(ctx, &content.Document{Key: key, Payload: clean, UpdatedAt: g.now().UTC()}); err != nil {
		metrics.ContentOps.WithLabelValues(key, "save", "error").Inc()
		return nil, &content.StorageError{Op: "save", Key: key, Err: err}
	}
	metrics.ContentOps.WithLabelValues(key, "save", "ok").Inc()
	return clean, nil
}
