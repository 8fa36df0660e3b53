// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"jobboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when no ledger row matches a lookup.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository is the row-level contract beneath the refresh token
// ledger. It deliberately has no opinion on token state: FindByHash returns
// revoked, rotated and expired rows alike, because classifying the presented
// token (and deciding whether it is a replay) is the ledger's job, not the
// store's. All read-then-write sequences run inside TransactionManager.Execute.
type RefreshTokenRepository interface {
	// Create inserts a new ledger row.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a row by its stored secret hash, regardless of state.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// FindByHashForUpdate is FindByHash with the row locked for the rest of
	// the surrounding transaction. Rotation must use this form: without the
	// lock two concurrent presentations of the same active token both read
	// it as active and both rotate. Only valid inside TransactionManager.Execute.
	FindByHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// Update persists state transitions (revoked flags, successor links).
	Update(ctx context.Context, token *entity.RefreshToken) error

	// FindByUserID retrieves all rows for a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// RevokeAllByUserID marks every non-revoked row for the user revoked in a
	// single statement and returns the number of rows touched.
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID, revokedAt time.Time) (int64, error)

	// DeleteExpired reaps rows past their expiry. Expiry is evaluated lazily at
	// use time, so this exists only for out-of-band cleanup.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
