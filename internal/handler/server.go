// Package handler implements the HTTP handlers for the travel journal API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, upload.go) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelapp/travel-journal/backend/internal/auth"
	"github.com/travelapp/travel-journal/backend/internal/domain"
	"github.com/travelapp/travel-journal/backend/internal/service"
)

// AuthServicer defines the authentication operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, email, password, displayName string) (service.AuthResult, error)
	Login(ctx context.Context, email, password string) (service.AuthResult, error)
	CurrentUser(ctx context.Context, userID int64) (domain.User, error)
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	List(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id int64) (domain.Trip, error)
	ByAuthor(ctx context.Context, authorID int64) ([]domain.Trip, error)
	ByTag(ctx context.Context, tag string) ([]domain.Trip, error)
	Search(ctx context.Context, query string) ([]domain.Trip, error)
	Create(ctx context.Context, trip domain.Trip, callerID int64) (domain.Trip, error)
	Update(ctx context.Context, id int64, patch domain.TripPatch, callerID int64) (domain.Trip, error)
	Delete(ctx context.Context, id int64, callerID int64) error
	AttachPhoto(ctx context.Context, id int64, url string, callerID int64) (domain.Trip, error)
}

// Uploader defines the file-upload operation the handlers depend on.
type Uploader interface {
	Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	auth    AuthServicer
	trips   TripServicer
	uploads Uploader
	tokens  *auth.TokenService
}

// NewServer constructs the Server with all its dependencies.
func NewServer(authSvc AuthServicer, trips TripServicer, uploads Uploader, tokens *auth.TokenService) *Server {
	return &Server{auth: authSvc, trips: trips, uploads: uploads, tokens: tokens}
}

// Routes returns the API route tree. Read endpoints are public; every
// mutating trip endpoint, the current-user endpoint, and the upload proxy
// sit behind the bearer-token middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)

		r.Get("/trips", s.ListTrips)
		r.Get("/trips/search", s.SearchTrips)
		r.Get("/trips/author/{authorID}", s.TripsByAuthor)
		r.Get("/trips/tag/{tag}", s.TripsByTag)
		r.Get("/trips/{id}", s.GetTrip)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.tokens))

			r.Get("/auth/me", s.CurrentUser)
			r.Post("/trips", s.CreateTrip)
			r.Put("/trips/{id}", s.UpdateTrip)
			r.Delete("/trips/{id}", s.DeleteTrip)
			r.Post("/trips/{id}/photos", s.AttachPhoto)
			r.Post("/files/upload", s.UploadFile)
		})
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
