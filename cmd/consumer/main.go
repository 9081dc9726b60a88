package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v6"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/container"
	"github.com/serroba/url-shortener/internal/messaging"
	"go.uber.org/zap"
)

// loadOptions reads the consumer options from environ, or from the process
// environment when environ is nil.
func loadOptions(environ map[string]string) (*container.Options, error) {
	opts := &container.Options{}
	if err := env.Parse(opts, env.Options{Environment: environ}); err != nil {
		return nil, err
	}

	return opts, nil
}

func main() {
	opts, err := loadOptions(nil)
	if err != nil {
		zap.NewExample().Fatal("failed to parse environment", zap.Error(err))
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.ProcessorPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)

	processor, err := do.Invoke[*messaging.Processor](injector)
	if err != nil {
		logger.Fatal("failed to create processor", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := processor.Start(ctx); err != nil {
		logger.Fatal("failed to start processor", zap.Error(err))
	}

	logger.Info("consumer started",
		zap.String("redis", opts.RedisAddr),
		zap.String("consumer_group", opts.ConsumerGroup),
		zap.Strings("topics", processor.Topics()),
	)

	<-ctx.Done()

	logger.Info("shutting down")

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	_ = logger.Sync()
}
