package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAttempts is how many codes Shorten tries before giving up.
const DefaultMaxAttempts = 5

// Observer is notified about code allocation. It may be nil.
type Observer interface {
	CodeCollision()
}

// Service creates and resolves short links.
type Service struct {
	store       Repository
	encoder     *Encoder
	maxAttempts int
	observer    Observer
	reserved    map[Code]struct{}
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new shortening service.
func NewService(store Repository, encoder *Encoder, maxAttempts int, observer Observer, logger *zap.Logger) *Service {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Service{
		store:       store,
		encoder:     encoder,
		maxAttempts: maxAttempts,
		observer:    observer,
		reserved:    make(map[Code]struct{}),
		logger:      logger,
		now:         time.Now,
	}
}

// Reserve keeps codes from ever being issued, e.g. path segments already
// served by fixed routes. Call it before the service is shared.
func (s *Service) Reserve(codes ...Code) {
	for _, code := range codes {
		s.reserved[code] = struct{}{}
	}
}

// IsReserved reports whether code was passed to Reserve.
func (s *Service) IsReserved(code Code) bool {
	_, ok := s.reserved[code]

	return ok
}

// Shorten validates rawURL and stores it under a newly generated code.
// A code that is taken or reserved is replaced by a new one; ErrCollision is
// returned once every attempt has collided.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*ShortLink, error) {
	longURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		link := &ShortLink{
			Code:      s.encoder.Encode(),
			LongURL:   longURL,
			CreatedAt: s.now().UTC(),
		}

		if !s.IsReserved(link.Code) {
			err = s.store.Put(ctx, link)
			if err == nil {
				return link, nil
			}

			if !errors.Is(err, ErrDuplicateCode) {
				return nil, fmt.Errorf("save link: %w", err)
			}
		}

		s.logger.Warn("short code collision",
			zap.String("code", string(link.Code)),
			zap.Int("attempt", attempt),
		)

		if s.observer != nil {
			s.observer.CodeCollision()
		}
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrCollision, s.maxAttempts)
}

// Resolve returns the link stored under code.
func (s *Service) Resolve(ctx context.Context, code Code) (*ShortLink, error) {
	if code == "" {
		return nil, ErrNotFound
	}

	return s.store.Get(ctx, code)
}
