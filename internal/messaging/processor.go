package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.uber.org/zap"
)

const (
	handlerRetries = 3
	retryInterval  = 100 * time.Millisecond
	closeTimeout   = 30 * time.Second
)

// Handler processes a single decoded event.
type Handler[T any] func(ctx context.Context, event *T) error

// Processor dispatches the messages of one subscriber to typed handlers
// through a watermill router. Failed handlers are retried a few times before
// the message is nacked; panics count as failures.
type Processor struct {
	router     *message.Router
	subscriber message.Subscriber
	logger     *zap.Logger
	topics     []string
	done       chan struct{}
	runErr     error
}

// NewProcessor creates a processor reading from subscriber.
func NewProcessor(subscriber message.Subscriber, logger *zap.Logger) (*Processor, error) {
	wlogger := NewZapLogger(logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: closeTimeout}, wlogger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}

	router.AddMiddleware(
		middleware.Retry{
			MaxRetries:      handlerRetries,
			InitialInterval: retryInterval,
			MaxInterval:     time.Second,
			Multiplier:      2,
			Logger:          wlogger,
		}.Middleware,
		middleware.Recoverer,
	)

	return &Processor{
		router:     router,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

// Handle routes topic to handler. Payloads are JSON encoded T; malformed
// payloads are logged and acked so they are never redelivered.
// Handlers must be registered before Start.
func Handle[T any](p *Processor, topic string, handler Handler[T]) {
	logger := p.logger.With(zap.String("topic", topic))

	p.router.AddNoPublisherHandler(topic, topic, p.subscriber, func(msg *message.Message) error {
		var event T
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logger.Error("dropping malformed event",
				zap.String("messageId", msg.UUID),
				zap.Error(err),
			)

			return nil
		}

		if err := handler(msg.Context(), &event); err != nil {
			return fmt.Errorf("handle event %s: %w", msg.UUID, err)
		}

		logger.Debug("processed event", zap.String("messageId", msg.UUID))

		return nil
	})

	p.topics = append(p.topics, topic)
}

// Topics lists the registered topics in registration order.
func (p *Processor) Topics() []string {
	return append([]string(nil), p.topics...)
}

// Start runs the router in the background and returns once every handler
// is subscribed. Cancelling ctx stops the router.
func (p *Processor) Start(ctx context.Context) error {
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		p.runErr = p.router.Run(ctx)
	}()

	select {
	case <-p.router.Running():
		p.logger.Info("processor started", zap.Strings("topics", p.topics))

		return nil
	case <-p.done:
		if p.runErr == nil {
			return errors.New("processor stopped before running")
		}

		return fmt.Errorf("start processor: %w", p.runErr)
	}
}

// Shutdown stops the router, waits for in-flight handlers and closes the
// subscriber.
func (p *Processor) Shutdown() error {
	p.logger.Info("shutting down processor")

	err := p.router.Close()

	if p.done != nil {
		<-p.done

		err = errors.Join(err, p.runErr)
	}

	return errors.Join(err, p.subscriber.Close())
}
