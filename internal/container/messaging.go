package container

import (
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/analytics"
	analyticsstore "github.com/serroba/url-shortener/internal/analytics/store"
	"github.com/serroba/url-shortener/internal/messaging"
	"go.uber.org/zap"
)

// PublisherPackage provides the typed analytics publish functions. They
// publish to Redis Streams when analytics are enabled and discard events
// otherwise.
func PublisherPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.Bus, error) {
		publisher, err := messaging.NewRedisPublisher(
			do.MustInvoke[*Redis](i),
			messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i)),
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewBus(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (messaging.Publish[analytics.URLCreatedEvent], error) {
		return publishFunc[analytics.URLCreatedEvent](i, analytics.TopicURLCreated)
	})

	do.Provide(i, func(i *do.Injector) (messaging.Publish[analytics.URLAccessedEvent], error) {
		return publishFunc[analytics.URLAccessedEvent](i, analytics.TopicURLAccessed)
	})
}

func publishFunc[T any](i *do.Injector, topic string) (messaging.Publish[T], error) {
	if !do.MustInvoke[*Options](i).Analytics {
		return messaging.NopPublish[T](), nil
	}

	bus, err := do.Invoke[*messaging.Bus](i)
	if err != nil {
		return nil, err
	}

	return messaging.Topic[T](bus, topic), nil
}

// ProcessorPackage provides the analytics *messaging.Processor reading
// Redis Streams as Options.ConsumerGroup.
func ProcessorPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.Processor, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := messaging.NewRedisSubscriber(
			do.MustInvoke[*Redis](i),
			opts.ConsumerGroup,
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, err
		}

		processor, err := messaging.NewProcessor(subscriber, logger)
		if err != nil {
			return nil, err
		}

		analytics.Register(processor, analyticsstore.NewLog(logger))

		return processor, nil
	})
}
