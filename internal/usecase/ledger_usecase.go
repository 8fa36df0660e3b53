package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RotateFailure classifies why a rotation did not produce a successor token.
// Callers collapse all of these into one generic error toward the client;
// the distinction exists for logging and tests.
type RotateFailure string

const (
	// RotateUnknownToken means no ledger row matches the presented secret.
	RotateUnknownToken RotateFailure = "unknown_token"

	// RotateReplayDetected means the presented token was already rotated or
	// revoked. The whole token family for that user has been revoked.
	RotateReplayDetected RotateFailure = "replay_detected"

	// RotateExpired means the token's expiry has passed.
	RotateExpired RotateFailure = "expired"
)

// RotateResult is the structured outcome of a rotation attempt. OK and
// Failure are mutually exclusive; infrastructure problems surface as the
// error return instead.
type RotateResult struct {
	OK        bool
	Failure   RotateFailure
	UserID    uuid.UUID
	NewSecret string
	ExpiresAt time.Time
}

// RefreshTokenLedger is the authoritative record of refresh token state.
// Rotation and mass revocation run as single transactions; the transaction
// is the only concurrency guard, so two racing rotations of the same token
// resolve to one winner and one replay.
type RefreshTokenLedger interface {
	// Store records a freshly issued secret for the user. Only the hash of
	// the secret is persisted.
	Store(ctx context.Context, secret string, userID uuid.UUID, expiresAt time.Time) error

	// Rotate atomically retires the presented secret and issues a successor.
	// Presenting a rotated or revoked secret is treated as a replay and
	// revokes every token the user holds.
	Rotate(ctx context.Context, presentedSecret string) (*RotateResult, error)

	// Revoke invalidates a single secret. Unknown or already revoked secrets
	// are a no-op so callers cannot probe for token existence.
	Revoke(ctx context.Context, secret string) error

	// RevokeAll invalidates every active token the user holds.
	RevokeAll(ctx context.Context, userID uuid.UUID) error

	// ReapExpired deletes rows whose expiry has passed, returning the count.
	// Expiry is enforced lazily at use time; this is housekeeping only.
	ReapExpired(ctx context.Context) (int64, error)
}
