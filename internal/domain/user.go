package domain

import "time"

// User is a registered account. Users are created once at registration and
// never mutated or deleted afterwards.
// PasswordHash is excluded from JSON so it can never leak through a view.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated principal carried by a verified token.
// Ownership checks compare UserID, not Email, so casing or whitespace in
// the address can never grant or deny access.
type Identity struct {
	UserID int64
	Email  string
}
