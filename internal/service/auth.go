// Package service contains the business logic for the travel journal API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/travelapp/travel-journal/backend/internal/auth"
	"github.com/travelapp/travel-journal/backend/internal/domain"
	"github.com/travelapp/travel-journal/backend/internal/repo"
)

// AuthResult bundles the issued token and the user it binds, so the handler
// can build the auth response in one step.
type AuthResult struct {
	Token string
	User  domain.User
}

// AuthService implements registration, login, and current-user lookup.
type AuthService struct {
	users     repo.UserRepo
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService constructs an AuthService with all its dependencies.
func NewAuthService(users repo.UserRepo, tokens *auth.TokenService, passwords *auth.PasswordService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, passwords: passwords, logger: logger}
}

// Register creates a new account and logs it in.
// The email is lowercased so lookups are case-insensitive by construction.
// Returns domain.ErrDuplicateEmail if the address already has an account;
// in that case no row is written.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AuthResult{}, fmt.Errorf("service.AuthService.Register: %w: email is required", domain.ErrValidation)
	}
	if password == "" {
		return AuthResult{}, fmt.Errorf("service.AuthService.Register: %w: password is required", domain.ErrValidation)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	// Uniqueness is enforced by the email unique index, not a pre-check, so
	// two concurrent registrations cannot both slip through.
	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	return AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a fresh token. Nothing is persisted.
// An unknown email and a wrong password both come back as
// domain.ErrInvalidCredentials — the caller cannot tell which it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		return AuthResult{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	return AuthResult{Token: token, User: user}, nil
}

// CurrentUser resolves an authenticated id to the stored user record.
// Returns domain.ErrNotFound if the id no longer resolves (e.g. a token
// outliving a manually removed row).
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.CurrentUser: %w", err)
	}
	return user, nil
}
