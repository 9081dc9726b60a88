package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/url-shortener/internal/shortener"
)

// linkRecord is the serialized form of a link in key-value backends.
type linkRecord struct {
	LongURL   string    `json:"long_url"`
	CreatedAt time.Time `json:"created_at"`
}

func encodeLink(link *shortener.ShortLink) ([]byte, error) {
	return json.Marshal(linkRecord{LongURL: link.LongURL, CreatedAt: link.CreatedAt})
}

func decodeLink(code shortener.Code, data []byte) (*shortener.ShortLink, error) {
	var rec linkRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode link %s: %w", code, err)
	}

	return &shortener.ShortLink{Code: code, LongURL: rec.LongURL, CreatedAt: rec.CreatedAt}, nil
}

// RedisStore is a Redis implementation of shortener.Repository.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "link:",
	}
}

// Put writes the link with SETNX so that an existing code is never replaced.
func (r *RedisStore) Put(ctx context.Context, link *shortener.ShortLink) error {
	payload, err := encodeLink(link)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, r.prefix+string(link.Code), payload, 0).Result()
	if err != nil {
		return err
	}

	if !ok {
		return shortener.ErrDuplicateCode
	}

	return nil
}

func (r *RedisStore) Get(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	data, err := r.client.Get(ctx, r.prefix+string(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return decodeLink(code, data)
}

var _ shortener.Repository = (*RedisStore)(nil)
