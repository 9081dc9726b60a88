package analytics

import (
	"context"

	"github.com/serroba/url-shortener/internal/messaging"
)

// Store receives analytics events from the processor.
type Store interface {
	SaveURLCreated(ctx context.Context, event *URLCreatedEvent) error
	SaveURLAccessed(ctx context.Context, event *URLAccessedEvent) error
}

// Register routes both analytics topics to store.
func Register(p *messaging.Processor, store Store) {
	messaging.Handle(p, TopicURLCreated, store.SaveURLCreated)
	messaging.Handle(p, TopicURLAccessed, store.SaveURLAccessed)
}
