package service

import (
	"time"

	"github.com/google/uuid"
)

// AccessClaims is the decoded payload of a verified access token.
type AccessClaims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService is the token issuer: it mints and verifies signed access
// tokens and produces the opaque high-entropy secrets used for refresh
// tokens and mailed verify/reset links. Secrets carry no user association
// in their bytes; that link lives in the ledger or on the user row.
type TokenService interface {
	// IssueAccessToken creates a short-lived signed assertion of
	// (userID, issuedAt, expiresAt). No side effects.
	IssueAccessToken(userID uuid.UUID) (string, error)

	// ParseAccessToken checks signature and expiry. Malformed, expired and
	// badly signed tokens all fail with the same opaque error so callers
	// cannot leak which case occurred.
	ParseAccessToken(tokenString string) (*AccessClaims, error)

	// NewSecret returns a cryptographically random opaque secret.
	NewSecret() (string, error)

	// HashSecret returns the one-way hash under which a secret is persisted.
	HashSecret(secret string) string

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
