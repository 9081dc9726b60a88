package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

const testUserAgent = "TestAgent/1.0"

type testOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func setupTestAPI(t *testing.T, middlewares ...func(huma.Context, func(huma.Context))) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middlewares...)

	return router, api
}

func okHandler(_ context.Context, _ *struct{}) (*testOutput, error) {
	out := &testOutput{}
	out.Body.Message = "ok"

	return out, nil
}

func serve(router http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

type errStore struct{}

func (errStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}
