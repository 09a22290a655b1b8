package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelapp/travel-journal/backend/internal/auth"
	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// echoIdentity is a downstream handler that records the identity the
// middleware placed in the context.
func echoIdentity(got *domain.Identity, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if ident, ok := auth.IdentityFromContext(r.Context()); ok {
			*got = ident
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_validToken(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)
	token, err := tokens.Issue("ann@example.com", 7)
	require.NoError(t, err)

	var got domain.Identity
	var called bool
	h := auth.RequireAuth(tokens)(echoIdentity(&got, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "ann@example.com", got.Email)
}

func TestRequireAuth_rejects(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)

	expired, err := tokens.IssueWithTTL("ann@example.com", 7, -time.Minute)
	require.NoError(t, err)

	cases := map[string]string{
		"no header":     "",
		"wrong scheme":  "Basic abc123",
		"garbage token": "Bearer not-a-jwt",
		"expired token": "Bearer " + expired,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var got domain.Identity
			var called bool
			h := auth.RequireAuth(tokens)(echoIdentity(&got, &called))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "downstream handler must not run")
			assert.Contains(t, rec.Body.String(), "invalid_token")
		})
	}
}

func TestIdentityFromContext_anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := auth.IdentityFromContext(req.Context())
	assert.False(t, ok)
}
