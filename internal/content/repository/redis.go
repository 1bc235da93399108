package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/redis/go-redis/v9"
)

// RedisRepo keeps each section as a JSON value under "<prefix><key>", no TTL.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed repository. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "content:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) Get(ctx context.Context, key string) (*content.Document, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var d content.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *RedisRepo) Put(ctx context.Context, doc *content.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+doc.Key, b, 0).Err()
}
