package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/serroba/url-shortener/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMount(t *testing.T) {
	router := chi.NewRouter()
	web.Mount(router)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		return w
	}

	t.Run("serves index page at root", func(t *testing.T) {
		w := get("/")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `id="longUrl"`)
		assert.Contains(t, w.Body.String(), "/static/script.js")
	})

	t.Run("serves script with client behaviour", func(t *testing.T) {
		w := get("/static/script.js")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Please enter a URL")
		assert.Contains(t, body, "Failed to shorten URL")
		assert.Contains(t, body, "Copied!")
		assert.Contains(t, body, "long_url")
	})

	t.Run("serves stylesheet", func(t *testing.T) {
		w := get("/static/style.css")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	})

	t.Run("unknown asset is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/static/missing.js").Code)
	})
}
