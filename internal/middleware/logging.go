package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/metrics"
	"go.uber.org/zap"
)

// AccessLog logs every request and records it in m.
func AccessLog(m *metrics.Metrics, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		elapsed := time.Since(start)
		route := operationPath(ctx.Operation())
		status := ctx.Status()

		m.ObserveRequest(ctx.Method(), route, status, elapsed)

		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("route", route),
			zap.String("path", ctx.URL().Path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		}

		if status >= 500 {
			logger.Error("request", fields...)

			return
		}

		logger.Info("request", fields...)
	}
}
