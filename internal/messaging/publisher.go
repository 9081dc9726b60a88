package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Metadata keys set on every published message.
const (
	MetadataTopic       = "topic"
	MetadataPublishedAt = "published_at"
)

// Publish sends one typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc returns a Publish that JSON encodes events onto topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)
		msg.Metadata.Set(MetadataTopic, topic)
		msg.Metadata.Set(MetadataPublishedAt, time.Now().UTC().Format(time.RFC3339Nano))

		return publisher.Publish(topic, msg)
	}
}

// NopPublish discards events. It is used when analytics are disabled.
func NopPublish[T any]() Publish[T] {
	return func(_ context.Context, _ *T) error { return nil }
}

// Bus owns the publisher shared by the typed publish functions.
type Bus struct {
	publisher message.Publisher
}

// NewBus wraps publisher.
func NewBus(publisher message.Publisher) *Bus {
	return &Bus{publisher: publisher}
}

// Topic returns a typed publish function for topic.
func Topic[T any](b *Bus, topic string) Publish[T] {
	return NewPublishFunc[T](b.publisher, topic)
}

// Shutdown closes the underlying publisher.
func (b *Bus) Shutdown() error {
	return b.publisher.Close()
}
