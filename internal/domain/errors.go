package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank trip title).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateEmail is returned when registration is attempted with an email
// that already has an account.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. The two cases are deliberately
// indistinguishable to the caller.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a bearer token is missing, malformed,
// tampered with, or expired.
// Handlers should map this to HTTP 401.
var ErrInvalidToken = errors.New("invalid token")

// ErrForbidden is returned when an authenticated caller attempts to mutate
// a trip they do not own.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUpstream is returned by the storage client when the external object
// store responds with a non-success status or the request fails in transit.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream storage error")
