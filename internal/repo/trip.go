package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// All read operations return trips newest-first and carry the author's
// display name joined from the users table.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// List returns all trips ordered by created_at descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListByAuthor returns the trips owned by the given user, newest first.
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Trip, error)

	// ListByTag returns trips carrying the given tag (case-insensitive,
	// exact match), newest first.
	ListByTag(ctx context.Context, tag string) ([]domain.Trip, error)

	// Search returns trips whose title, description, or any tag contains
	// query case-insensitively, newest first.
	Search(ctx context.Context, query string) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and refreshes
	// updated_at. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// AppendPhoto atomically appends one URL to the end of the trip's photo
	// list and refreshes updated_at. Duplicates are allowed; order is
	// preserved. Returns domain.ErrNotFound if the trip does not exist.
	AppendPhoto(ctx context.Context, id int64, url string) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the shared SELECT list. Every query aliases trips as t and
// joins users as u so the author display name rides along with each row.
const tripColumns = `
	t.id, t.title, t.description, t.photos, t.tags,
	t.latitude, t.longitude, t.author_id, u.display_name,
	t.created_at, t.updated_at`

// Create inserts a new trip row and returns the full persisted record.
// The insert and the author join are one statement, so the returned view is
// exactly what a subsequent GetByID would see.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH t AS (
			INSERT INTO trips (title, description, photos, tags, latitude, longitude, author_id)
			VALUES (@title, @description, @photos, @tags, @latitude, @longitude, @author_id)
			RETURNING *
		)
		SELECT` + tripColumns + `
		FROM t
		JOIN users u ON u.id = t.author_id`

	args := pgx.NamedArgs{
		"title":       trip.Title,
		"description": trip.Description,
		"photos":      notNil(trip.Photos),
		"tags":        notNil(trip.Tags),
		"latitude":    trip.Latitude, // nil becomes NULL
		"longitude":   trip.Longitude,
		"author_id":   trip.AuthorID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `
		SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.author_id
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by created_at descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.author_id
		ORDER BY t.created_at DESC, t.id DESC`

	return r.queryTrips(ctx, "List", q, nil)
}

// ListByAuthor returns the given user's trips, newest first.
func (r *pgTripRepo) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Trip, error) {
	const q = `
		SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.author_id
		WHERE t.author_id = @author_id
		ORDER BY t.created_at DESC, t.id DESC`

	return r.queryTrips(ctx, "ListByAuthor", q, pgx.NamedArgs{"author_id": authorID})
}

// ListByTag returns trips carrying the tag, matched exactly but ignoring case.
func (r *pgTripRepo) ListByTag(ctx context.Context, tag string) ([]domain.Trip, error) {
	const q = `
		SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.author_id
		WHERE EXISTS (SELECT 1 FROM unnest(t.tags) AS tag WHERE LOWER(tag) = LOWER(@tag))
		ORDER BY t.created_at DESC, t.id DESC`

	return r.queryTrips(ctx, "ListByTag", q, pgx.NamedArgs{"tag": tag})
}

// Search matches query as a case-insensitive substring of the title, the
// description, or any tag.
func (r *pgTripRepo) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	const q = `
		SELECT` + tripColumns + `
		FROM trips t
		JOIN users u ON u.id = t.author_id
		WHERE t.title ILIKE '%' || @query || '%'
		   OR t.description ILIKE '%' || @query || '%'
		   OR EXISTS (SELECT 1 FROM unnest(t.tags) AS tag WHERE tag ILIKE '%' || @query || '%')
		ORDER BY t.created_at DESC, t.id DESC`

	return r.queryTrips(ctx, "Search", q, pgx.NamedArgs{"query": query})
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// Merging patch fields into the stored record happens in the service layer;
// by the time a trip reaches here it is the complete desired row.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH t AS (
			UPDATE trips
			SET title       = @title,
			    description = @description,
			    photos      = @photos,
			    tags        = @tags,
			    latitude    = @latitude,
			    longitude   = @longitude,
			    updated_at  = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT` + tripColumns + `
		FROM t
		JOIN users u ON u.id = t.author_id`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"title":       trip.Title,
		"description": trip.Description,
		"photos":      notNil(trip.Photos),
		"tags":        notNil(trip.Tags),
		"latitude":    trip.Latitude,
		"longitude":   trip.Longitude,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// AppendPhoto appends url to the photo array in a single UPDATE, so two
// concurrent attaches both land (in commit order) instead of one clobbering
// the other with a stale read-modify-write.
func (r *pgTripRepo) AppendPhoto(ctx context.Context, id int64, url string) (domain.Trip, error) {
	const q = `
		WITH t AS (
			UPDATE trips
			SET photos     = array_append(photos, @url),
			    updated_at = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT` + tripColumns + `
		FROM t
		JOIN users u ON u.id = t.author_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "url": url})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.AppendPhoto: %w", err)
	}
	return result, nil
}

// queryTrips runs a multi-row query and scans the results.
// op names the calling method for error messages.
func (r *pgTripRepo) queryTrips(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: rows: %w", op, err)
	}

	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the nullable latitude/longitude conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t   domain.Trip
		lat pgtype.Float8
		lng pgtype.Float8
	)

	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Photos, &t.Tags,
		&lat, &lng, &t.AuthorID, &t.AuthorDisplayName,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if lat.Valid {
		v := lat.Float64
		t.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		t.Longitude = &v
	}

	return t, nil
}

// notNil maps a nil slice to an empty one so the NOT NULL array columns
// never receive a SQL NULL.
func notNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
