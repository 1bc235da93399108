// Package backends opens the stores selected in config: content
// repositories, the upload blob store and the shared connections behind
// them. Connections are opened lazily, once, and released by Close.
package backends

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/globalsolutions/website/backend/internal/config"
	"github.com/globalsolutions/website/backend/internal/content/repository"
	"github.com/globalsolutions/website/backend/internal/content/sections"
	"github.com/globalsolutions/website/backend/internal/database"
	"github.com/globalsolutions/website/backend/internal/storage"
	"github.com/globalsolutions/website/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Set struct {
	cfg *config.Config

	postgres *sql.DB
	sqlite   *sql.DB
	mongo    *mongo.Client
	redis    *redis.Client
	minio    *storage.MinIOStorage

	repos   map[string]repository.Repository
	closers []func() error
}

func New(cfg *config.Config) *Set {
	return &Set{cfg: cfg, repos: map[string]repository.Repository{}}
}

// Content returns the repository serving every section: the default
// backend plus any per-section overrides. Overrides must name a
// registered section.
func (s *Set) Content(ctx context.Context) (repository.Repository, error) {
	def, err := s.Repo(ctx, s.cfg.Content.Backend)
	if err != nil {
		return nil, err
	}
	if len(s.cfg.Content.SectionBackends) == 0 {
		return def, nil
	}
	registry := sections.NewRegistry()
	routes := map[string]repository.Repository{}
	for key, backend := range s.cfg.Content.SectionBackends {
		if _, ok := registry.Lookup(key); !ok {
			return nil, fmt.Errorf("CONTENT_SECTION_BACKENDS: unknown section %q", key)
		}
		r, err := s.Repo(ctx, backend)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", key, err)
		}
		routes[key] = r
		logger.Infof("content: section %s uses %s backend", key, backend)
	}
	return repository.NewRoutedRepo(def, routes), nil
}

// BackendFor names the backend that stores key.
func (s *Set) BackendFor(key string) string {
	if b, ok := s.cfg.Content.SectionBackends[key]; ok {
		return b
	}
	return s.cfg.Content.Backend
}

// Repo opens (or reuses) one content backend by name.
func (s *Set) Repo(ctx context.Context, backend string) (repository.Repository, error) {
	if r, ok := s.repos[backend]; ok {
		return r, nil
	}
	var (
		r   repository.Repository
		err error
	)
	switch backend {
	case config.BackendFile:
		r, err = repository.NewFileRepo(s.cfg.Content.DataDir)
	case config.BackendMemory:
		r = repository.NewMemoryRepo()
	case config.BackendSQLite:
		var db *sql.DB
		if db, err = s.SQLite(); err == nil {
			r, err = repository.NewSQLiteRepo(db)
		}
	case config.BackendPostgres:
		var db *sql.DB
		if db, err = s.Postgres(ctx); err == nil {
			pr := repository.NewPostgresRepo(db, s.cfg.Postgres.ContentTable)
			if err = pr.EnsureTable(ctx); err == nil {
				r = pr
			}
		}
	case config.BackendMongo:
		var client *mongo.Client
		if client, err = s.Mongo(ctx); err == nil {
			col := client.Database(s.cfg.MongoDB.Database).Collection(s.cfg.MongoDB.Collection)
			r, err = repository.NewMongoRepo(ctx, col)
		}
	case config.BackendRedis:
		var client *redis.Client
		if client, err = s.Redis(ctx); err == nil {
			r = repository.NewRedisRepo(client, s.cfg.Redis.Prefix)
		}
	default:
		err = fmt.Errorf("unknown content backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", backend, err)
	}
	s.repos[backend] = r
	return r, nil
}

func (s *Set) Postgres(ctx context.Context) (*sql.DB, error) {
	if s.postgres != nil {
		return s.postgres, nil
	}
	if s.cfg.Postgres.URL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is not set")
	}
	db, err := database.ConnectPostgres(ctx, s.cfg.Postgres.URL, s.cfg.Postgres.ConnectTries)
	if err != nil {
		return nil, err
	}
	s.postgres = db
	s.closers = append(s.closers, db.Close)
	return db, nil
}

func (s *Set) SQLite() (*sql.DB, error) {
	if s.sqlite != nil {
		return s.sqlite, nil
	}
	db, err := database.OpenSQLite(s.cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	s.sqlite = db
	s.closers = append(s.closers, db.Close)
	return db, nil
}

func (s *Set) Mongo(ctx context.Context) (*mongo.Client, error) {
	if s.mongo != nil {
		return s.mongo, nil
	}
	const maxAttempts = 5
	backoff := time.Second
	var (
		client *mongo.Client
		err    error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, s.cfg.MongoDB.URI, s.cfg.MongoDB.Timeout)
		if err == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		return nil, err
	}
	s.mongo = client
	s.closers = append(s.closers, func() error { return client.Disconnect(context.Background()) })
	return client, nil
}

// Redis connects to the configured Redis server and pings it.
func (s *Set) Redis(ctx context.Context) (*redis.Client, error) {
	if s.redis != nil {
		return s.redis, nil
	}
	if s.cfg.Redis.Host == "" {
		return nil, fmt.Errorf("REDIS_HOST is not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     s.cfg.Redis.Host + ":" + s.cfg.Redis.Port,
		Password: s.cfg.Redis.Password,
		DB:       s.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Infof("connected to Redis %s:%s", s.cfg.Redis.Host, s.cfg.Redis.Port)
	s.redis = client
	s.closers = append(s.closers, client.Close)
	return client, nil
}

// Blobs opens the upload store. For the disk backend the returned
// DiskStore is also non-nil so the server can serve it statically.
func (s *Set) Blobs() (storage.BlobStore, *storage.DiskStore, error) {
	switch s.cfg.Uploads.Backend {
	case "minio":
		if s.minio == nil {
			m, err := storage.NewMinIOStorage(s.cfg.MinIO)
			if err != nil {
				return nil, nil, err
			}
			s.minio = m
		}
		return s.minio, nil, nil
	default:
		d, err := storage.NewDiskStore(s.cfg.Uploads.PublicDir)
		if err != nil {
			return nil, nil, err
		}
		return d, d, nil
	}
}

// Ready pings every opened connection. Keys are dependency names.
func (s *Set) Ready(ctx context.Context) map[string]bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	deps := map[string]bool{}
	if s.postgres != nil {
		deps["postgres"] = s.postgres.PingContext(ctx) == nil
	}
	if s.sqlite != nil {
		deps["sqlite"] = s.sqlite.PingContext(ctx) == nil
	}
	if s.mongo != nil {
		deps["mongo"] = s.mongo.Ping(ctx, nil) == nil
	}
	if s.redis != nil {
		deps["redis"] = s.redis.Ping(ctx).Err() == nil
	}
	if s.minio != nil {
		deps["minio"] = s.minio.Ping(ctx) == nil
	}
	return deps
}

// Close releases connections in reverse open order.
func (s *Set) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warnf("backends: close: %v", err)
		}
	}
	s.closers = nil
}
