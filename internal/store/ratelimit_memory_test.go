package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
func newFakeClock() *fakeClock               { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }
func newClockedStore(c *fakeClock) *RateLimitMemoryStore {
	s := NewRateLimitMemoryStore()
	s.now = c.now

	return s
}

func TestRateLimitMemoryStore(t *testing.T) {
	t.Run("records and counts requests", func(t *testing.T) {
		s := NewRateLimitMemoryStore()

		for want := int64(1); want <= 3; want++ {
			count, err := s.Record(context.Background(), "key1", time.Minute)

			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		s := NewRateLimitMemoryStore()

		_, _ = s.Record(context.Background(), "key1", time.Minute)
		_, _ = s.Record(context.Background(), "key1", time.Minute)

		count, err := s.Record(context.Background(), "key2", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "key2 should have its own counter")
	})

	t.Run("prunes expired entries", func(t *testing.T) {
		clock := newFakeClock()
		s := newClockedStore(clock)

		_, _ = s.Record(context.Background(), "key1", time.Minute)
		clock.advance(30 * time.Second)
		_, _ = s.Record(context.Background(), "key1", time.Minute)
		clock.advance(45 * time.Second)

		count, err := s.Record(context.Background(), "key1", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count, "only the first request should have expired")
	})
}

func TestRateLimitMemoryStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	s := newClockedStore(clock)

	_, _ = s.Record(context.Background(), "idle", time.Minute)
	clock.advance(2 * time.Minute)
	_, _ = s.Record(context.Background(), "active", time.Minute)

	removed := s.Sweep(time.Minute)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Keys())
}

func TestRateLimitMemoryStore_Run(t *testing.T) {
	s := NewRateLimitMemoryStore()
	_, _ = s.Record(context.Background(), "key", time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		s.Run(ctx, 5*time.Millisecond, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Keys() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
