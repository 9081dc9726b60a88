package container

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/analytics"
	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/serroba/url-shortener/internal/health"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/serroba/url-shortener/internal/metrics"
	"github.com/serroba/url-shortener/internal/middleware"
	"github.com/serroba/url-shortener/internal/ratelimit"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/web"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API with every route
// registered.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(chimiddleware.Recoverer)

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		m := do.MustInvoke[*metrics.Metrics](i)

		service, err := do.Invoke[*shortener.Service](i)
		if err != nil {
			return nil, err
		}

		publishCreated, err := do.Invoke[messaging.Publish[analytics.URLCreatedEvent]](i)
		if err != nil {
			return nil, err
		}

		publishAccessed, err := do.Invoke[messaging.Publish[analytics.URLAccessedEvent]](i)
		if err != nil {
			return nil, err
		}

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(
			middleware.AccessLog(m, logger),
			middleware.RequestMeta(api),
			middleware.PolicyRateLimiter(
				api,
				do.MustInvoke[*ratelimit.PolicyLimiter](i),
				ratelimit.NewOperationScopeResolver(),
				logger,
			),
		)

		handlers.RegisterRoutes(api, handlers.NewURLHandler(service, publishCreated, publishAccessed, m, logger))
		health.RegisterRoutes(api, health.NewHandler(healthCheckers(i)))

		router.Handle("/metrics", m.Handler())
		web.Mount(router)

		reserved, err := fixedSegments(router)
		if err != nil {
			return nil, err
		}

		service.Reserve(reserved...)
		logger.Debug("reserved short codes", zap.Any("codes", reserved))

		return api, nil
	})
}

func healthCheckers(i *do.Injector) map[string]health.Checker {
	opts := do.MustInvoke[*Options](i)
	checkers := make(map[string]health.Checker)

	if opts.UsesRedis() {
		checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*Redis](i))
	}

	if opts.Storage == StoragePostgres {
		checkers["postgres"] = health.NewPostgresChecker(do.MustInvoke[*Postgres](i).Pool)
	}

	return checkers
}

// fixedSegments returns the first path segment of every route that does not
// start with a parameter. chi matches these before /{code}, so a short code
// equal to one of them would never redirect.
func fixedSegments(router chi.Routes) ([]shortener.Code, error) {
	seen := make(map[shortener.Code]struct{})

	var segments []shortener.Code

	err := chi.Walk(router, func(_, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		segment, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
		if segment == "" || strings.ContainsAny(segment, "{*") {
			return nil
		}

		if _, ok := seen[shortener.Code(segment)]; !ok {
			seen[shortener.Code(segment)] = struct{}{}
			segments = append(segments, shortener.Code(segment))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk routes: %w", err)
	}

	return segments, nil
}
