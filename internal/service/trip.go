package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/travelapp/travel-journal/backend/internal/domain"
	"github.com/travelapp/travel-journal/backend/internal/repo"
)

// TripService implements business logic for Trip operations: validation,
// partial-update merging, and owner-only mutation checks.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// List returns all trips, newest first.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	return s.trips.List(ctx)
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return s.trips.GetByID(ctx, id)
}

// ByAuthor returns the trips owned by the given user, newest first.
func (s *TripService) ByAuthor(ctx context.Context, authorID int64) ([]domain.Trip, error) {
	return s.trips.ListByAuthor(ctx, authorID)
}

// ByTag returns trips carrying the given tag, newest first.
func (s *TripService) ByTag(ctx context.Context, tag string) ([]domain.Trip, error) {
	return s.trips.ListByTag(ctx, tag)
}

// Search returns trips whose title, description, or any tag contains query
// case-insensitively, newest first. An empty query matches everything,
// which makes it equivalent to List.
func (s *TripService) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	return s.trips.Search(ctx, query)
}

// Create validates and persists a new trip owned by the caller.
// The caller becomes the immutable owner regardless of any author value
// smuggled into the input.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, callerID int64) (domain.Trip, error) {
	if strings.TrimSpace(trip.Title) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: title is required", domain.ErrValidation)
	}

	trip.ID = 0
	trip.AuthorID = callerID

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Update applies a partial update to the trip: fields present in the patch
// replace stored values, absent fields are left untouched. A supplied title
// must be non-blank. Only the owner may update.
func (s *TripService) Update(ctx context.Context, id int64, patch domain.TripPatch, callerID int64) (domain.Trip, error) {
	trip, err := s.ownedTrip(ctx, "Update", id, callerID)
	if err != nil {
		return domain.Trip{}, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: title must not be blank", domain.ErrValidation)
	}

	patch.Apply(&trip)

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete permanently removes the trip. Only the owner may delete.
func (s *TripService) Delete(ctx context.Context, id int64, callerID int64) error {
	if _, err := s.ownedTrip(ctx, "Delete", id, callerID); err != nil {
		return err
	}

	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AttachPhoto appends one URL to the end of the trip's photo list.
// Order is preserved and duplicates are allowed. Only the owner may attach.
func (s *TripService) AttachPhoto(ctx context.Context, id int64, url string, callerID int64) (domain.Trip, error) {
	if strings.TrimSpace(url) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.AttachPhoto: %w: photo url is required", domain.ErrValidation)
	}

	if _, err := s.ownedTrip(ctx, "AttachPhoto", id, callerID); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.AppendPhoto(ctx, id, url)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AttachPhoto: %w", err)
	}
	return updated, nil
}

// ownedTrip loads the trip and enforces the ownership predicate shared by all
// mutating operations. Existence is checked before ownership, so a caller
// probing someone else's trip id still learns whether it exists — matching
// the read endpoints, which are public anyway.
func (s *TripService) ownedTrip(ctx context.Context, op string, id, callerID int64) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	if trip.AuthorID != callerID {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w: not the trip owner", op, domain.ErrForbidden)
	}
	return trip, nil
}
