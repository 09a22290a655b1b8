// Package domain contains the core data types for the travel journal API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip represents a single journal entry: one travel destination with its
// photos, tags, and optional coordinates. A trip belongs to exactly one
// author for its entire lifetime; ownership is never transferred.
type Trip struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos"`
	Tags        []string `json:"tags"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	AuthorID    int64    `json:"author_id"`
	// AuthorDisplayName is denormalized from the users table when a trip is
	// read; it is never written through this struct.
	AuthorDisplayName string    `json:"author_display_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TripPatch carries a partial update. A nil field means "leave the stored
// value unchanged"; a non-nil field replaces it wholesale. Slices replace
// the entire stored list — there is no element-level merge.
type TripPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Photos      []string `json:"photos"`
	Tags        []string `json:"tags"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Apply merges the patch into t, field by field.
// Validating supplied values (e.g. a blank title) is the service's job.
func (p TripPatch) Apply(t *Trip) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Photos != nil {
		t.Photos = p.Photos
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	if p.Latitude != nil {
		t.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		t.Longitude = p.Longitude
	}
}
