// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents one issued refresh credential in the ledger.
// Only the SHA-256 hash of the secret is ever persisted; the raw value lives
// solely on the client, so a database leak does not expose usable credentials.
//
// State machine per record:
//   - active:  not revoked, no successor, not past expiry. Usable exactly once.
//   - rotated: ReplacedByID points at the successor. Presenting it again is a replay.
//   - revoked: Revoked flag set (logout, password reset, replay response).
//   - expired: past ExpiresAt, evaluated lazily against the clock at use time.
type RefreshToken struct {
	ID           uuid.UUID  // The unique ID for this specific refresh token record.
	UserID       uuid.UUID  // Links this session to the User it belongs to.
	TokenHash    string     // SHA-256 hash of the raw refresh secret.
	ExpiresAt    time.Time  // The exact time when this refresh token becomes invalid.
	CreatedAt    time.Time  // When this session was created (login or rotation).
	Revoked      bool       // Set by logout, password reset, or replay detection.
	RevokedAt    *time.Time // When the Revoked flag was set. Nil while usable.
	ReplacedByID *uuid.UUID // ID of the rotation successor. Nil until rotated.
}

// IsExpired reports whether the record is past its expiry at the given instant.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsRotated reports whether this token was already consumed by a rotation.
func (t *RefreshToken) IsRotated() bool {
	return t.ReplacedByID != nil
}

// IsActive reports whether the token is still usable for exactly one rotation.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.Revoked && !t.IsRotated() && !t.IsExpired(now)
}

// SecurityTokenKind tags the single outstanding security action a user can have.
type SecurityTokenKind string

const (
	// SecurityTokenVerify marks a pending email verification.
	SecurityTokenVerify SecurityTokenKind = "verify"
	// SecurityTokenReset marks a pending password reset.
	SecurityTokenReset SecurityTokenKind = "reset"
)

// SecurityToken is the tagged verify/reset token stored on the user record.
// Only one can be outstanding per user at a time; issuing a new one replaces
// whatever was pending before.
type SecurityToken struct {
	Kind      SecurityTokenKind
	TokenHash string // SHA-256 hash of the mailed secret, never the raw value.
	ExpiresAt time.Time
}

// Matches reports whether the presented hash can redeem this token for the
// given kind at the given instant.
func (t *SecurityToken) Matches(kind SecurityTokenKind, tokenHash string, now time.Time) bool {
	if t == nil {
		return false
	}

	return t.Kind == kind && t.TokenHash == tokenHash && now.Before(t.ExpiresAt)
}
