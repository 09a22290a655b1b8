package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/travelapp/travel-journal/backend/internal/auth"
	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// createTripRequest is the body of POST /api/trips. The author comes from
// the bearer token, never from the body.
type createTripRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
	Tags        []string `json:"tags"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// attachPhotoRequest is the body of POST /api/trips/{id}/photos.
type attachPhotoRequest struct {
	URL string `json:"url"`
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripList(trips))
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// TripsByAuthor handles GET /api/trips/author/{authorID}.
func (s *Server) TripsByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := pathID(w, r, "authorID")
	if !ok {
		return
	}

	trips, err := s.trips.ByAuthor(r.Context(), authorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripList(trips))
}

// TripsByTag handles GET /api/trips/tag/{tag}.
func (s *Server) TripsByTag(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ByTag(r.Context(), chi.URLParam(r, "tag"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripList(trips))
}

// SearchTrips handles GET /api/trips/search?query=q.
func (s *Server) SearchTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripList(trips))
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrInvalidToken)
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	created, err := s.trips.Create(r.Context(), domain.Trip{
		Title:       req.Title,
		Description: req.Description,
		Photos:      req.Photos,
		Tags:        req.Tags,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}, ident.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateTrip handles PUT /api/trips/{id}. The body is a partial update:
// absent fields keep their stored values.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrInvalidToken)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var patch domain.TripPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	updated, err := s.trips.Update(r.Context(), id, patch, ident.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrInvalidToken)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id, ident.UserID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AttachPhoto handles POST /api/trips/{id}/photos.
func (s *Server) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrInvalidToken)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req attachPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	updated, err := s.trips.AttachPhoto(r.Context(), id, req.URL, ident.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// pathID parses the named chi URL parameter as an int64 id.
// On failure it writes a 400 and returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid "+name+" path parameter")
		return 0, false
	}
	return id, true
}

// tripList guarantees the JSON for an empty result is [] rather than null.
func tripList(trips []domain.Trip) []domain.Trip {
	if trips == nil {
		return []domain.Trip{}
	}
	return trips
}
