package container

import (
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/metrics"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// MetricsPackage provides *metrics.Metrics on a fresh registry.
func MetricsPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*metrics.Metrics, error) {
		return metrics.New(nil), nil
	})
}

// ShortenerPackage provides *shortener.Service.
func ShortenerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)

		encoder, err := shortener.NewEncoder(shortener.DefaultAlphabet, opts.CodeLength)
		if err != nil {
			return nil, err
		}

		logger := do.MustInvoke[*zap.Logger](i)
		logger.Info("short codes configured",
			zap.Int("length", encoder.Length()),
			zap.Int("max_attempts", opts.MaxAttempts),
		)

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			encoder,
			opts.MaxAttempts,
			do.MustInvoke[*metrics.Metrics](i),
			logger,
		), nil
	})
}
