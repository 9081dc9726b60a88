package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortLink maps a short code to the URL it redirects to.
type ShortLink struct {
	Code      Code
	LongURL   string
	CreatedAt time.Time
}

// Path returns the path a ShortLink is served under, e.g. "/abc123".
func (l *ShortLink) Path() string {
	return "/" + string(l.Code)
}
