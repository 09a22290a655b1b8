// Package auth provides bearer-token issuance and verification, password
// hashing, and the middleware that gates protected routes.
//
// Tokens are stateless JWTs signed with an HMAC secret held by the server.
// There is no revocation list; expiry is the only invalidation mechanism.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// issuer scopes tokens to this application so a token minted by another
// service sharing the same secret is still rejected.
const issuer = "travel-journal"

// defaultTTL is how long an issued token remains valid.
const defaultTTL = 24 * time.Hour

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given HMAC secret and the
// default 24h token lifetime. The secret should be at least 32 bytes of
// random data in production; anything under 16 is rejected outright.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 bytes")
	}
	return &TokenService{secret: []byte(secret), ttl: defaultTTL}, nil
}

// claims is the JWT payload. The numeric user id travels in a dedicated
// "uid" claim so ownership checks never have to re-resolve the email.
// Subject carries the email for display and debugging.
type claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Issue creates a signed token binding the given user.
func (s *TokenService) Issue(email string, userID int64) (string, error) {
	return s.issueWithTTL(email, userID, s.ttl)
}

// IssueWithTTL creates a token with a custom lifetime. Tests use this to
// mint already-expired tokens; production code should call Issue.
func (s *TokenService) IssueWithTTL(email string, userID int64, ttl time.Duration) (string, error) {
	return s.issueWithTTL(email, userID, ttl)
}

func (s *TokenService) issueWithTTL(email string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the identity it
// binds. Any failure (bad signature, wrong algorithm, wrong issuer, or
// expiry) surfaces as domain.ErrInvalidToken.
//
// jwt.WithValidMethods pins HS256 so a token signed with "none" (or an
// asymmetric algorithm confusion payload) is rejected before the claims
// are even looked at.
func (s *TokenService) Verify(tokenStr string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: malformed claims", domain.ErrInvalidToken)
	}
	if c.UserID <= 0 {
		return domain.Identity{}, fmt.Errorf("%w: missing uid claim (got %s)", domain.ErrInvalidToken, strconv.FormatInt(c.UserID, 10))
	}

	return domain.Identity{UserID: c.UserID, Email: c.Subject}, nil
}
