package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/url-shortener/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
type RedisCacheRepository struct {
	store  shortener.Repository
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client redis.UniversalClient, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "cache:link:",
		ttl:    ttl,
	}
}

// Put stores a link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Put(ctx context.Context, link *shortener.ShortLink) error {
	if err := r.store.Put(ctx, link); err != nil {
		return err
	}

	// Write-through: update cache after successful save
	r.cacheLink(ctx, link)

	return nil
}

// Get retrieves a link by its code, checking cache first.
func (r *RedisCacheRepository) Get(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if data, err := r.client.Get(ctx, r.prefix+string(code)).Bytes(); err == nil {
		if link, err := decodeLink(code, data); err == nil {
			return link, nil
		}
	}

	// Cache miss - fetch from store
	link, err := r.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.ShortLink) {
	payload, err := encodeLink(link)
	if err != nil {
		return
	}

	_ = r.client.Set(ctx, r.prefix+string(link.Code), payload, r.ttl).Err()
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
