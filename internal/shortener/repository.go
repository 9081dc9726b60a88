package shortener

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("url not found")
	ErrDuplicateCode     = errors.New("code already exists")
	ErrCollision         = errors.New("could not allocate a unique code")
	ErrEmptyURL          = errors.New("URL cannot be empty")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrInvalidCodeLength = errors.New("invalid code length")
)

// Repository persists short links.
type Repository interface {
	// Put stores a new link. It returns ErrDuplicateCode when the code is taken
	// and must not overwrite the existing link.
	Put(ctx context.Context, link *ShortLink) error

	// Get returns the link for code or ErrNotFound.
	Get(ctx context.Context, code Code) (*ShortLink, error)
}
