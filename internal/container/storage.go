package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"go.uber.org/zap"
)

// Redis is the shared Redis connection, closed on shutdown.
type Redis struct {
	redis.UniversalClient
}

func (r *Redis) Shutdown() error {
	return r.Close()
}

// Postgres is the shared connection pool, closed on shutdown.
type Postgres struct {
	*pgxpool.Pool
}

func (p *Postgres) Shutdown() error {
	p.Close()

	return nil
}

// RedisPackage provides *Redis.
func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Redis, error) {
		opts := do.MustInvoke[*Options](i)

		return &Redis{UniversalClient: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

// PostgresPackage provides *Postgres after applying the schema migrations.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*Postgres, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.DatabaseURL == "" {
			return nil, errors.New("postgres storage needs --database-url")
		}

		if err := store.Migrate(opts.DatabaseURL); err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &Postgres{Pool: pool}, nil
	})
}

// RepositoryPackage provides the shortener.Repository selected by
// Options.Storage, wrapped in the Redis cache when CacheTTL is set.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*store.BoltStore, error) {
		return store.NewBoltStore(do.MustInvoke[*Options](i).BoltPath)
	})

	do.Provide(i, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var repo shortener.Repository

		switch opts.Storage {
		case StorageMemory:
			repo = store.NewMemoryStore()
		case StorageRedis:
			repo = store.NewRedisStore(do.MustInvoke[*Redis](i))
		case StoragePostgres:
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			repo = store.NewPostgresStore(pg.Pool)
		case StorageBolt:
			bolt, err := do.Invoke[*store.BoltStore](i)
			if err != nil {
				return nil, err
			}

			repo = bolt
		default:
			return nil, fmt.Errorf("unknown storage %q", opts.Storage)
		}

		if opts.CacheTTL > 0 {
			repo = store.NewRedisCacheRepository(repo, do.MustInvoke[*Redis](i), time.Duration(opts.CacheTTL)*time.Second)
		}

		logger.Info("link storage ready",
			zap.String("storage", opts.Storage),
			zap.Int("cache_ttl_seconds", opts.CacheTTL),
		)

		return repo, nil
	})
}
