package container

import (
	"context"
	"slices"
	"time"

	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/serroba/url-shortener/internal/ratelimit"
	"github.com/serroba/url-shortener/internal/store"
)

const rateLimitSweepInterval = time.Minute

// memoryRateLimit runs the sweeper of an in-memory rate limit store until
// shutdown.
type memoryRateLimit struct {
	*store.RateLimitMemoryStore
	cancel context.CancelFunc
}

func (m *memoryRateLimit) Shutdown() error {
	m.cancel()

	return nil
}

// RateLimitPackage provides the rate limit store and *ratelimit.PolicyLimiter.
// Counters live in Redis whenever Redis is configured, in memory otherwise.
func RateLimitPackage(i *do.Injector) {
	do.ProvideValue(i, ratelimit.DefaultPolicy())

	do.Provide(i, func(i *do.Injector) (ratelimit.Store, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.UsesRedis() {
			return store.NewRateLimitRedisStore(do.MustInvoke[*Redis](i)), nil
		}

		policy := do.MustInvoke[*ratelimit.Policy](i)
		maxWindow := policy.MaxWindow(slices.Concat(handlers.ShortenLimits, handlers.RedirectLimits)...)

		ctx, cancel := context.WithCancel(context.Background())
		memory := store.NewRateLimitMemoryStore()

		go memory.Run(ctx, rateLimitSweepInterval, maxWindow)

		return &memoryRateLimit{RateLimitMemoryStore: memory, cancel: cancel}, nil
	})

	do.Provide(i, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		return ratelimit.NewPolicyLimiter(
			do.MustInvoke[ratelimit.Store](i),
			do.MustInvoke[*ratelimit.Policy](i),
		), nil
	})
}
