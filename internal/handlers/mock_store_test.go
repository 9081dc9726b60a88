package handlers_test

import (
	"context"
	"errors"
	"sync"

	"github.com/serroba/url-shortener/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// mockStore is a test double for shortener.Repository that can be configured to return errors.
type mockStore struct {
	mu     sync.Mutex
	putErr error
	getErr error
	links  map[shortener.Code]shortener.ShortLink
}

func newMockStore() *mockStore {
	return &mockStore{links: make(map[shortener.Code]shortener.ShortLink)}
}

func (m *mockStore) Put(_ context.Context, link *shortener.ShortLink) error {
	if m.putErr != nil {
		return m.putErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Code]; ok {
		return shortener.ErrDuplicateCode
	}

	m.links[link.Code] = *link

	return nil
}

func (m *mockStore) Get(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &link, nil
}

// recorder captures published events.
type recorder[T any] struct {
	mu     sync.Mutex
	events []*T
	err    error
}

func (r *recorder[T]) publish(_ context.Context, event *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)

	return r.err
}

func (r *recorder[T]) all() []*T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*T(nil), r.events...)
}
