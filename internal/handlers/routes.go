package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/ratelimit"
)

// Per-endpoint limits, applied instead of the default policy.
var (
	ShortenLimits = []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 10},     // 10 per minute
		{Window: time.Hour, Max: 100},      // 100 per hour
		{Window: 24 * time.Hour, Max: 500}, // 500 per day
	}
	RedirectLimits = []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 1000},
	}
)

// RegisterRoutes registers the shorten and redirect operations.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "create-short-url",
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Create short URL",
		Description: "Stores the URL under a newly generated short code and returns its path.",
		Tags:        []string{"URLs"},
		Errors:      []int{http.StatusBadRequest, http.StatusTooManyRequests},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: ShortenLimits},
		},
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect-to-url",
		Method:        http.MethodGet,
		Path:          "/{code}",
		Summary:       "Redirect to original URL",
		Description:   "Redirects to the original URL associated with the short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusFound,
		Errors:        []int{http.StatusNotFound, http.StatusTooManyRequests},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: RedirectLimits},
		},
	}, urlHandler.RedirectToURL)
}
