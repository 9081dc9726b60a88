package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/serroba/url-shortener/internal/analytics"
	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	mu       sync.Mutex
	created  []*analytics.URLCreatedEvent
	accessed []*analytics.URLAccessedEvent
}

func (m *mockStore) SaveURLCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created = append(m.created, event)

	return nil
}

func (m *mockStore) SaveURLAccessed(_ context.Context, event *analytics.URLAccessedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessed = append(m.accessed, event)

	return nil
}

func (m *mockStore) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.created), len(m.accessed)
}

func TestRegister(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	processor, err := messaging.NewProcessor(pubSub, zap.NewNop())
	require.NoError(t, err)

	st := &mockStore{}
	analytics.Register(processor, st)
	assert.Equal(t, []string{analytics.TopicURLCreated, analytics.TopicURLAccessed}, processor.Topics())

	require.NoError(t, processor.Start(context.Background()))
	t.Cleanup(func() { _ = processor.Shutdown() })

	publishCreated := messaging.NewPublishFunc[analytics.URLCreatedEvent](pubSub, analytics.TopicURLCreated)
	publishAccessed := messaging.NewPublishFunc[analytics.URLAccessedEvent](pubSub, analytics.TopicURLAccessed)

	require.NoError(t, publishCreated(context.Background(), &analytics.URLCreatedEvent{
		Code:    "abc123",
		LongURL: "https://example.com",
	}))
	require.NoError(t, publishAccessed(context.Background(), &analytics.URLAccessedEvent{
		Code:     "abc123",
		Referrer: "https://ref.example",
	}))

	require.Eventually(t, func() bool {
		created, accessed := st.counts()

		return created == 1 && accessed == 1
	}, 2*time.Second, 10*time.Millisecond)

	st.mu.Lock()
	defer st.mu.Unlock()

	assert.Equal(t, "https://example.com", st.created[0].LongURL)
	assert.Equal(t, "https://ref.example", st.accessed[0].Referrer)
}
