package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/travelapp/travel-journal/backend/internal/auth"
	"github.com/travelapp/travel-journal/backend/internal/domain"
	"github.com/travelapp/travel-journal/backend/internal/handler"
	"github.com/travelapp/travel-journal/backend/internal/service"
)

// mockAuthServicer is a test double for handler.AuthServicer.
// Set only the method fields your test needs.
type mockAuthServicer struct {
	register    func(ctx context.Context, email, password, displayName string) (service.AuthResult, error)
	login       func(ctx context.Context, email, password string) (service.AuthResult, error)
	currentUser func(ctx context.Context, userID int64) (domain.User, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, email, password, displayName string) (service.AuthResult, error) {
	return m.register(ctx, email, password, displayName)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) CurrentUser(ctx context.Context, userID int64) (domain.User, error) {
	return m.currentUser(ctx, userID)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// mockTripServicer is a test double for handler.TripServicer.
type mockTripServicer struct {
	list        func(ctx context.Context) ([]domain.Trip, error)
	getByID     func(ctx context.Context, id int64) (domain.Trip, error)
	byAuthor    func(ctx context.Context, authorID int64) ([]domain.Trip, error)
	byTag       func(ctx context.Context, tag string) ([]domain.Trip, error)
	search      func(ctx context.Context, query string) ([]domain.Trip, error)
	create      func(ctx context.Context, trip domain.Trip, callerID int64) (domain.Trip, error)
	update      func(ctx context.Context, id int64, patch domain.TripPatch, callerID int64) (domain.Trip, error)
	delete      func(ctx context.Context, id int64, callerID int64) error
	attachPhoto func(ctx context.Context, id int64, url string, callerID int64) (domain.Trip, error)
}

func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) { return m.list(ctx) }
func (m *mockTripServicer) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ByAuthor(ctx context.Context, authorID int64) ([]domain.Trip, error) {
	return m.byAuthor(ctx, authorID)
}
func (m *mockTripServicer) ByTag(ctx context.Context, tag string) ([]domain.Trip, error) {
	return m.byTag(ctx, tag)
}
func (m *mockTripServicer) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	return m.search(ctx, query)
}
func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip, callerID int64) (domain.Trip, error) {
	return m.create(ctx, trip, callerID)
}
func (m *mockTripServicer) Update(ctx context.Context, id int64, patch domain.TripPatch, callerID int64) (domain.Trip, error) {
	return m.update(ctx, id, patch, callerID)
}
func (m *mockTripServicer) Delete(ctx context.Context, id int64, callerID int64) error {
	return m.delete(ctx, id, callerID)
}
func (m *mockTripServicer) AttachPhoto(ctx context.Context, id int64, url string, callerID int64) (domain.Trip, error) {
	return m.attachPhoto(ctx, id, url, callerID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockUploader is a test double for handler.Uploader.
type mockUploader struct {
	upload func(ctx context.Context, data []byte, originalName, contentType string) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	return m.upload(ctx, data, originalName, contentType)
}

var _ handler.Uploader = (*mockUploader)(nil)

// ---- helpers ---------------------------------------------------------------

// testTokens is the TokenService shared by all handler tests.
func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)
	return tokens
}

// newRouter wires a Server with the given mocks into the real route tree,
// exactly as main.go does in production. Nil mocks are fine for routes the
// test never hits.
func newRouter(t *testing.T, a handler.AuthServicer, tr handler.TripServicer, up handler.Uploader) http.Handler {
	t.Helper()
	return handler.NewServer(a, tr, up, testTokens(t)).Routes()
}

// bearerFor mints a valid token for the given user.
func bearerFor(t *testing.T, userID int64) string {
	t.Helper()
	token, err := testTokens(t).Issue("ann@example.com", userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func tripFixture() domain.Trip {
	lat, lng := 48.8566, 2.3522
	return domain.Trip{
		ID:                10,
		Title:             "Paris",
		Description:       "a weekend away",
		Photos:            []string{"a"},
		Tags:              []string{"france"},
		Latitude:          &lat,
		Longitude:         &lng,
		AuthorID:          1,
		AuthorDisplayName: "Ann",
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
}

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	h := newRouter(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}
