package store

import (
	"context"
	"sync"

	"github.com/serroba/url-shortener/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Store that writes every event to the log and keeps
// per-code redirect counts in memory. Nothing is persisted.
type Log struct {
	logger *zap.Logger

	mu       sync.Mutex
	accesses map[string]int64
}

// NewLog creates a logging analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{
		logger:   logger,
		accesses: make(map[string]int64),
	}
}

func (l *Log) SaveURLCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	l.logger.Info("link created",
		zap.String("code", event.Code),
		zap.String("longUrl", event.LongURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("userAgent", event.UserAgent),
	)

	return nil
}

func (l *Log) SaveURLAccessed(_ context.Context, event *analytics.URLAccessedEvent) error {
	l.mu.Lock()
	l.accesses[event.Code]++
	total := l.accesses[event.Code]
	l.mu.Unlock()

	l.logger.Info("link accessed",
		zap.String("code", event.Code),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("clientIp", event.ClientIP),
		zap.String("referrer", event.Referrer),
		zap.Int64("accesses", total),
	)

	return nil
}

// Accesses returns how many redirects through code were seen by this process.
func (l *Log) Accesses(code string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.accesses[code]
}

var _ analytics.Store = (*Log)(nil)
