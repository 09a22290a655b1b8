package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelapp/travel-journal/backend/internal/middleware"
)

// drainBody mimics a JSON-decoding handler: it reads the whole body and
// answers 413 when the read is cut off by the body limiter.
func drainBody() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func postWithBody(n int) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/trips", strings.NewReader(strings.Repeat("y", n)))
}

func TestLimitBody_underLimit(t *testing.T) {
	h := middleware.LimitBody(64)(drainBody())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postWithBody(32))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLimitBody_declaredTooLarge(t *testing.T) {
	nextRan := false
	h := middleware.LimitBody(64)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextRan = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postWithBody(128)) // httptest sets Content-Length from the reader

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, nextRan, "oversize request must be refused before the handler")
}

func TestLimitBody_undeclaredLength(t *testing.T) {
	h := middleware.LimitBody(64)(drainBody())

	req := postWithBody(128)
	req.ContentLength = -1 // chunked upload, length unknown up front
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
