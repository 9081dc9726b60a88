package ratelimit_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestOperationScopeResolver_Resolve(t *testing.T) {
	t.Parallel()

	read := []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}
	write := []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}

	tests := []struct {
		name           string
		method         string
		operation      *huma.Operation
		expectedScopes []ratelimit.Scope
	}{
		{name: "GET is classified as read", method: http.MethodGet, expectedScopes: read},
		{name: "HEAD is classified as read", method: http.MethodHead, expectedScopes: read},
		{name: "OPTIONS is classified as read", method: http.MethodOptions, expectedScopes: read},
		{name: "POST is classified as write", method: http.MethodPost, expectedScopes: write},
		{name: "DELETE is classified as write", method: http.MethodDelete, expectedScopes: write},
		{
			name:           "operation without metadata falls back to method",
			method:         http.MethodGet,
			operation:      &huma.Operation{},
			expectedScopes: read,
		},
		{
			name:   "unrelated metadata falls back to method",
			method: http.MethodPost,
			operation: &huma.Operation{
				Metadata: map[string]any{"other": "value"},
			},
			expectedScopes: write,
		},
		{
			name:   "metadata scope overrides GET",
			method: http.MethodGet,
			operation: &huma.Operation{
				Metadata: map[string]any{
					ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeWrite},
				},
			},
			expectedScopes: write,
		},
		{
			name:   "empty metadata scope falls back to method",
			method: http.MethodPost,
			operation: &huma.Operation{
				Metadata: map[string]any{
					ratelimit.MetadataKey: ratelimit.EndpointConfig{},
				},
			},
			expectedScopes: write,
		},
	}

	resolver := ratelimit.NewOperationScopeResolver()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expectedScopes, resolver.Resolve(tt.method, tt.operation))
		})
	}
}

func TestEndpointConfigFor(t *testing.T) {
	t.Run("nil operation returns nil", func(t *testing.T) {
		assert.Nil(t, ratelimit.EndpointConfigFor(nil))
	})

	t.Run("wrong metadata type returns nil", func(t *testing.T) {
		op := &huma.Operation{Metadata: map[string]any{ratelimit.MetadataKey: "nope"}}

		assert.Nil(t, ratelimit.EndpointConfigFor(op))
	})

	t.Run("returns attached config", func(t *testing.T) {
		op := &huma.Operation{Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		}}

		cfg := ratelimit.EndpointConfigFor(op)

		if assert.NotNil(t, cfg) {
			assert.True(t, cfg.Disabled)
		}
	})
}
